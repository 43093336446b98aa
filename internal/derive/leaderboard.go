package derive

import (
	"sort"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// LeaderboardCategory is one of the six fixed ranking views.
type LeaderboardCategory string

const (
	CategoryTopGainers       LeaderboardCategory = "top_gainers"
	Category24hStars         LeaderboardCategory = "24h_stars"
	CategoryHotStreak        LeaderboardCategory = "hot_streak"
	CategoryTrendingUp       LeaderboardCategory = "trending_up"
	CategoryMostVolatile     LeaderboardCategory = "most_volatile"
	CategoryBottomPerformers LeaderboardCategory = "bottom_performers"
)

// Categories lists all leaderboard categories in display order.
var Categories = []LeaderboardCategory{
	CategoryTopGainers,
	Category24hStars,
	CategoryHotStreak,
	CategoryTrendingUp,
	CategoryMostVolatile,
	CategoryBottomPerformers,
}

// CategoryTitles maps each category to its display heading.
var CategoryTitles = map[LeaderboardCategory]string{
	CategoryTopGainers:       "Top Gainers",
	Category24hStars:         "24-Hour Stars",
	CategoryHotStreak:        "Hot Streak",
	CategoryTrendingUp:       "Trending Up",
	CategoryMostVolatile:     "Most Volatile",
	CategoryBottomPerformers: "Bottom Performers",
}

const leaderboardSize = 5

// Leaderboard is one ranked category slice. Empty is set when the filtered
// record set produced no entries, so the renderer shows an explicit
// placeholder instead of omitting the category.
type Leaderboard struct {
	Category LeaderboardCategory
	Title    string
	Entries  []model.StrategyRecord
	Empty    bool
}

// categorySpec pairs a leaderboard category with its metric and direction.
type categorySpec struct {
	metric func(model.StrategyRecord) float64
	asc    bool
	keep   func(model.StrategyRecord) bool
}

var categorySpecs = map[LeaderboardCategory]categorySpec{
	CategoryTopGainers: {metric: func(r model.StrategyRecord) float64 { return r.CumulativeReturn }},
	Category24hStars:   {metric: func(r model.StrategyRecord) float64 { return r.Change24h }},
	CategoryHotStreak: {
		metric: func(r model.StrategyRecord) float64 { return float64(r.ConsecutivePositiveDays) },
		keep:   func(r model.StrategyRecord) bool { return r.ConsecutivePositiveDays > 0 },
	},
	CategoryTrendingUp:       {metric: func(r model.StrategyRecord) float64 { return r.Change7d }},
	CategoryMostVolatile:     {metric: func(r model.StrategyRecord) float64 { return r.MaxReturn }},
	CategoryBottomPerformers: {metric: func(r model.StrategyRecord) float64 { return r.CumulativeReturn }, asc: true},
}

// Leaderboards ranks the coin-filtered record set into all six categories.
// Every category is always present in the result.
func Leaderboards(snap *model.Snapshot, coin string) []Leaderboard {
	var records []model.StrategyRecord
	if snap != nil {
		records = FilterCoin(snap.Symbols, coin)
	}

	boards := make([]Leaderboard, 0, len(Categories))
	for _, cat := range Categories {
		spec := categorySpecs[cat]

		pool := make([]model.StrategyRecord, 0, len(records))
		for _, r := range records {
			if spec.keep == nil || spec.keep(r) {
				pool = append(pool, r)
			}
		}

		// Default order first so equal metrics rank deterministically.
		sort.SliceStable(pool, func(i, j int) bool { return defaultLess(pool[i], pool[j]) })
		sort.SliceStable(pool, func(i, j int) bool {
			vi, vj := spec.metric(pool[i]), spec.metric(pool[j])
			if spec.asc {
				return vi < vj
			}
			return vi > vj
		})

		if len(pool) > leaderboardSize {
			pool = pool[:leaderboardSize]
		}
		boards = append(boards, Leaderboard{
			Category: cat,
			Title:    CategoryTitles[cat],
			Entries:  pool,
			Empty:    len(pool) == 0,
		})
	}
	return boards
}
