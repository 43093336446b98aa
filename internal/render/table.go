package render

import (
	"fmt"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// RowView is one rendered table row. Entering marks rows whose strategy key
// was not present in the previous render; the surface staggers their entrance
// animation unless the pass suppresses it.
type RowView struct {
	Key      string
	Cells    []string
	Classes  []string
	Entering bool
}

// TableHeader lists the table column headings in cell order.
var TableHeader = []string{
	"SYMBOL", "BUCKET", "PAIR", "POS", "PRICE",
	"RETURN", "24H", "7D", "MAX", "STREAK", "FRESH",
}

// TableRows builds the row views for an already filtered and sorted record
// list. animate enables entrance animation for newly appearing rows; it is
// false on background auto-refresh.
func TableRows(c *Cache, rows []model.StrategyRecord, animate bool) []RowView {
	seen := make(map[string]bool, len(rows))
	views := make([]RowView, 0, len(rows))

	for _, r := range rows {
		key := r.Key().String()
		seen[key] = true
		view := RowView{
			Key: key,
			Cells: []string{
				r.Symbol,
				r.Bucket,
				r.TradingPair,
				string(r.Position),
				FormatPrice(r.LastPrice),
				FormatPercent(r.CumulativeReturn),
				FormatPercent(r.Change24h),
				FormatPercent(r.Change7d),
				FormatPercent(r.MaxReturn),
				fmt.Sprintf("%d", r.ConsecutivePositiveDays),
				string(r.Freshness),
			},
			Classes: []string{
				"neutral",
				"neutral",
				"neutral",
				positionClass(r.Position),
				"neutral",
				ClassFor(r.CumulativeReturn),
				ClassFor(r.Change24h),
				ClassFor(r.Change7d),
				ClassFor(r.MaxReturn),
				"neutral",
				ClassForFreshness(string(r.Freshness)),
			},
			Entering: animate && !c.rowKeys[key],
		}
		views = append(views, view)
	}

	c.rowKeys = seen
	return views
}

func positionClass(p model.Position) string {
	switch p {
	case model.PositionLong:
		return "positive"
	case model.PositionShort:
		return "negative"
	default:
		return "neutral"
	}
}
