package fetch

import (
	"encoding/json"
	"fmt"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// Tracker detects dataset changes between snapshots by comparing the
// serialized strategy-record list byte for byte. The comparison is
// intentionally coarse: any field change anywhere forces a full re-render of
// every dependent view.
type Tracker struct {
	prev []byte
}

// Changed reports whether the record set differs from the previous call and
// records the new serialization. The first observation always reports a
// change.
func (t *Tracker) Changed(records []model.StrategyRecord) (bool, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return false, fmt.Errorf("fetch: serialize records: %w", err)
	}
	changed := t.prev == nil || string(t.prev) != string(data)
	t.prev = data
	return changed, nil
}

// Reset clears the tracked serialization so the next snapshot reports a
// change.
func (t *Tracker) Reset() {
	t.prev = nil
}
