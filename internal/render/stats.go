package render

import (
	"fmt"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// StatFields reconciles the aggregate-stats row for one scope. Each stat is
// diffed under the scope so switching the coin filter never cross-pollinates
// pulse animations between scopes.
func StatFields(c *Cache, scope string, stats model.AggregateStats) []FieldUpdate {
	return []FieldUpdate{
		c.DiffNumber(scope, "total_symbols", float64(stats.TotalSymbols),
			fmt.Sprintf("%d", stats.TotalSymbols), "neutral"),
		c.DiffNumber(scope, "fresh_symbols", float64(stats.FreshSymbols),
			fmt.Sprintf("%d", stats.FreshSymbols), "neutral"),
		c.DiffNumber(scope, "freshness_percent", stats.FreshnessPercent,
			fmt.Sprintf("%.1f%%", stats.FreshnessPercent), "neutral"),
		c.DiffNumber(scope, "avg_return", stats.AvgReturn,
			FormatPercent(stats.AvgReturn), ClassFor(stats.AvgReturn)),
		c.DiffNumber(scope, "min_return", stats.MinReturn,
			FormatPercent(stats.MinReturn), ClassFor(stats.MinReturn)),
		c.DiffNumber(scope, "max_return", stats.MaxReturn,
			FormatPercent(stats.MaxReturn), ClassFor(stats.MaxReturn)),
		c.DiffNumber(scope, "median_return", stats.MedianReturn,
			FormatPercent(stats.MedianReturn), ClassFor(stats.MedianReturn)),
		c.DiffNumber(scope, "positive_cumulative", float64(stats.PositiveCumulative),
			fmt.Sprintf("%d", stats.PositiveCumulative), "positive"),
		c.DiffNumber(scope, "negative_cumulative", float64(stats.NegativeCumulative),
			fmt.Sprintf("%d", stats.NegativeCumulative), "negative"),
		c.DiffNumber(scope, "positive_24h", float64(stats.Positive24h),
			fmt.Sprintf("%d", stats.Positive24h), "positive"),
		c.DiffNumber(scope, "negative_24h", float64(stats.Negative24h),
			fmt.Sprintf("%d", stats.Negative24h), "negative"),
		c.DiffNumber(scope, "active_positions", float64(stats.ActivePositions),
			fmt.Sprintf("%d", stats.ActivePositions), "neutral"),
	}
}
