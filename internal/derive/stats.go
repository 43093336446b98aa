// Package derive contains the pure derivation functions of the dashboard:
// given a snapshot and the current view state, it produces the aggregate
// stats, the filtered/sorted table rows, the leaderboards, and the clipped
// chart series. No function here mutates its inputs; every output is a fresh
// copy.
package derive

import (
	"strings"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// StatsFor selects the aggregate statistics for a scope. Scope "all" uses the
// global stats; a coin scope uses the backend-supplied per-coin stats. A coin
// with no aggregate yields a zeroed AggregateStats so downstream formatting
// never sees NaN.
func StatsFor(snap *model.Snapshot, coin string) model.AggregateStats {
	if snap == nil {
		return model.AggregateStats{}
	}
	if coin == "" || strings.EqualFold(coin, "all") {
		return snap.Stats
	}
	for code, stats := range snap.CoinStats {
		if strings.EqualFold(code, coin) {
			return stats
		}
	}
	return model.AggregateStats{}
}
