package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

func leaderboardSnapshot() *model.Snapshot {
	symbols := []model.StrategyRecord{
		{Symbol: "BTC", BucketRaw: "b1", TSID: "1", CumulativeReturn: 50, Change24h: 1, Change7d: 3, MaxReturn: 60, ConsecutivePositiveDays: 4},
		{Symbol: "BTC", BucketRaw: "b1", TSID: "2", CumulativeReturn: -20, Change24h: 8, Change7d: -5, MaxReturn: 10, ConsecutivePositiveDays: 0},
		{Symbol: "ETH", BucketRaw: "b1", TSID: "3", CumulativeReturn: 10, Change24h: -2, Change7d: 12, MaxReturn: 90, ConsecutivePositiveDays: 7},
		{Symbol: "ETH", BucketRaw: "b2", TSID: "4", CumulativeReturn: 5, Change24h: 3, Change7d: 1, MaxReturn: 15, ConsecutivePositiveDays: 0},
		{Symbol: "SOL", BucketRaw: "b1", TSID: "5", CumulativeReturn: 25, Change24h: 5, Change7d: 9, MaxReturn: 40, ConsecutivePositiveDays: 2},
		{Symbol: "SOL", BucketRaw: "b2", TSID: "6", CumulativeReturn: -8, Change24h: 0.5, Change7d: 2, MaxReturn: 30, ConsecutivePositiveDays: 1},
	}
	return &model.Snapshot{Symbols: symbols}
}

func boardFor(t *testing.T, boards []Leaderboard, cat LeaderboardCategory) Leaderboard {
	t.Helper()
	for _, b := range boards {
		if b.Category == cat {
			return b
		}
	}
	t.Fatalf("category %s missing", cat)
	return Leaderboard{}
}

func TestLeaderboardsAllCategoriesPresent(t *testing.T) {
	boards := Leaderboards(leaderboardSnapshot(), "all")
	require.Len(t, boards, 6)
	for i, cat := range Categories {
		assert.Equal(t, cat, boards[i].Category)
		assert.Equal(t, CategoryTitles[cat], boards[i].Title)
	}
}

func TestTopGainersRanking(t *testing.T) {
	boards := Leaderboards(leaderboardSnapshot(), "all")
	top := boardFor(t, boards, CategoryTopGainers)
	require.Len(t, top.Entries, 5)
	assert.Equal(t, 50.0, top.Entries[0].CumulativeReturn)
	assert.Equal(t, 25.0, top.Entries[1].CumulativeReturn)
	assert.Equal(t, 10.0, top.Entries[2].CumulativeReturn)
}

func TestBottomPerformersAscending(t *testing.T) {
	boards := Leaderboards(leaderboardSnapshot(), "all")
	bottom := boardFor(t, boards, CategoryBottomPerformers)
	require.NotEmpty(t, bottom.Entries)
	assert.Equal(t, -20.0, bottom.Entries[0].CumulativeReturn)
	assert.Equal(t, -8.0, bottom.Entries[1].CumulativeReturn)
}

func TestHotStreakExcludesZeroStreaks(t *testing.T) {
	boards := Leaderboards(leaderboardSnapshot(), "all")
	streak := boardFor(t, boards, CategoryHotStreak)
	require.Len(t, streak.Entries, 4)
	assert.Equal(t, 7, streak.Entries[0].ConsecutivePositiveDays)
	for _, e := range streak.Entries {
		assert.Positive(t, e.ConsecutivePositiveDays)
	}
}

func TestLeaderboardsRespectCoinFilter(t *testing.T) {
	boards := Leaderboards(leaderboardSnapshot(), "eth")
	top := boardFor(t, boards, CategoryTopGainers)
	require.Len(t, top.Entries, 2)
	for _, e := range top.Entries {
		assert.Equal(t, "ETH", e.Symbol)
	}
}

func TestLeaderboardsEmptyFilteredSet(t *testing.T) {
	boards := Leaderboards(leaderboardSnapshot(), "ltc")
	require.Len(t, boards, 6)
	for _, b := range boards {
		assert.True(t, b.Empty, "category %s should be marked empty", b.Category)
		assert.Empty(t, b.Entries)
	}
}

func TestLeaderboardsCapAtFive(t *testing.T) {
	snap := leaderboardSnapshot()
	boards := Leaderboards(snap, "all")
	for _, b := range boards {
		assert.LessOrEqual(t, len(b.Entries), 5)
	}
}
