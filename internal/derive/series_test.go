package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgnsrekt/pulseboard/internal/model"
	"github.com/dgnsrekt/pulseboard/internal/session"
)

func seriesSnapshot(now time.Time) *model.SeriesSnapshot {
	// Points at 12h, 3d, 20d, and 60d before now.
	offsets := []time.Duration{
		60 * 24 * time.Hour,
		20 * 24 * time.Hour,
		3 * 24 * time.Hour,
		12 * time.Hour,
	}
	values := []float64{-50, 10, 40, 100}

	var xs []string
	for _, off := range offsets {
		xs = append(xs, now.Add(-off).Format(model.TimeLayout))
	}
	return &model.SeriesSnapshot{
		Symbols: []model.StrategySeries{
			{Symbol: "BTC", Pair: "USD", Bucket: "b1", TSID: "1", Color: "#f7931a", Data: model.SeriesData{X: xs, Y: values}},
			{Symbol: "ETH", Pair: "USD", Bucket: "b1", TSID: "2", Color: "#627eea", Data: model.SeriesData{X: xs[:2], Y: values[:2]}},
		},
	}
}

func TestTimeRangeMonotonicity(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := seriesSnapshot(now)

	ranges := []session.TimeRange{session.Range1D, session.Range1W, session.Range1M, session.Range3M, session.RangeAll}
	prev := -1
	for _, r := range ranges {
		views := SeriesViews(snap, session.State{Coin: "btc", Range: r}, now)
		count := 0
		if len(views) > 0 {
			count = len(views[0].Points)
		}
		assert.GreaterOrEqual(t, count, prev, "range %s shrank the point count", r)
		prev = count
	}

	all := SeriesViews(snap, session.State{Coin: "btc", Range: session.RangeAll}, now)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Points, 4)
}

func TestSeriesCoinFilter(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := seriesSnapshot(now)

	views := SeriesViews(snap, session.State{Coin: "all", Range: session.RangeAll}, now)
	assert.Len(t, views, 2)

	views = SeriesViews(snap, session.State{Coin: "ETH", Range: session.RangeAll}, now)
	require.Len(t, views, 1)
	assert.Equal(t, "ETH", views[0].Symbol)
}

func TestSeriesClippingDropsEmptySeries(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := seriesSnapshot(now)

	// ETH only has points 60d and 20d back; a 1W window leaves nothing.
	views := SeriesViews(snap, session.State{Coin: "eth", Range: session.Range1W}, now)
	assert.Empty(t, views)
}

func TestGrowthMultiplier(t *testing.T) {
	assert.Equal(t, 0.5, GrowthMultiplier(-50))
	assert.Equal(t, 2.0, GrowthMultiplier(100))
	assert.Equal(t, 1.0, GrowthMultiplier(0))
}

func TestLogScaleIsPresentationOnly(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := seriesSnapshot(now)

	views := SeriesViews(snap, session.State{Coin: "btc", Range: session.RangeAll, LogScale: true}, now)
	require.Len(t, views, 1)
	points := views[0].Points
	require.Len(t, points, 4)

	// First point is -50%, last is +100%.
	assert.Equal(t, 0.5, points[0].Value)
	assert.Equal(t, -50.0, points[0].Percent)
	assert.Equal(t, 2.0, points[3].Value)
	assert.Equal(t, 100.0, points[3].Percent)

	// The underlying snapshot is untouched.
	assert.Equal(t, -50.0, snap.Symbols[0].Data.Y[0])
}

func TestSeriesViewsSkipMalformedSeries(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := seriesSnapshot(now)
	snap.Symbols = append(snap.Symbols, model.StrategySeries{
		Symbol: "BTC", Pair: "USD", Bucket: "b9", TSID: "9",
		Data: model.SeriesData{X: []string{"not-a-time"}, Y: []float64{1}},
	})

	views := SeriesViews(snap, session.State{Coin: "all", Range: session.RangeAll}, now)
	assert.Len(t, views, 2)
}
