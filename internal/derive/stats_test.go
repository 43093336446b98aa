package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

func TestStatsForGlobalScope(t *testing.T) {
	snap := &model.Snapshot{
		Stats: model.AggregateStats{TotalSymbols: 4, AvgReturn: 3.67},
		CoinStats: map[string]model.AggregateStats{
			"BTC": {TotalSymbols: 2, AvgReturn: 3.67},
		},
	}

	assert.Equal(t, snap.Stats, StatsFor(snap, "all"))
	assert.Equal(t, snap.Stats, StatsFor(snap, ""))
	assert.Equal(t, snap.Stats, StatsFor(snap, "ALL"))
}

func TestStatsForCoinScope(t *testing.T) {
	snap := &model.Snapshot{
		Stats: model.AggregateStats{TotalSymbols: 4},
		CoinStats: map[string]model.AggregateStats{
			"BTC": {TotalSymbols: 2, AvgReturn: 3.67, FreshnessPercent: 100},
		},
	}

	got := StatsFor(snap, "btc")
	assert.Equal(t, 2, got.TotalSymbols)
	assert.Equal(t, 3.67, got.AvgReturn)
}

func TestStatsForMissingCoinSynthesizesZeros(t *testing.T) {
	snap := &model.Snapshot{
		Stats:     model.AggregateStats{TotalSymbols: 4, AvgReturn: 9.9},
		CoinStats: map[string]model.AggregateStats{"BTC": {TotalSymbols: 2}},
	}

	got := StatsFor(snap, "LTC")
	assert.Equal(t, model.AggregateStats{}, got)
	assert.Equal(t, 0, got.TotalSymbols)
	assert.Equal(t, 0.0, got.FreshnessPercent)
	assert.Equal(t, 0.0, got.AvgReturn)
}

func TestStatsForNilSnapshot(t *testing.T) {
	assert.Equal(t, model.AggregateStats{}, StatsFor(nil, "btc"))
}
