package derive

import (
	"strings"
	"time"

	"github.com/dgnsrekt/pulseboard/internal/model"
	"github.com/dgnsrekt/pulseboard/internal/session"
)

// PlotPoint is one chartable point. Value is what gets plotted (the raw
// percent, or the growth multiplier under log scale); Percent always keeps
// the original signed percentage for hover text.
type PlotPoint struct {
	Time    time.Time
	Value   float64
	Percent float64
}

// SeriesView is one strategy's chart-ready series after filtering, clipping,
// and scale transformation.
type SeriesView struct {
	Symbol string
	Pair   string
	Bucket string
	TSID   string
	Color  string
	Points []PlotPoint
}

// Label builds the legend entry for the series.
func (v SeriesView) Label() string {
	return v.Symbol + "/" + v.Pair + " " + v.Bucket + " TS-" + v.TSID
}

// GrowthMultiplier maps a cumulative return percentage onto a growth
// multiplier for log-scale plotting: -50% becomes 0.5, +100% becomes 2.0.
func GrowthMultiplier(percent float64) float64 {
	return (100 + percent) / 100
}

// rangeDurations gives the clip window for each bounded time range.
var rangeDurations = map[session.TimeRange]time.Duration{
	session.Range1D: 24 * time.Hour,
	session.Range1W: 7 * 24 * time.Hour,
	session.Range1M: 30 * 24 * time.Hour,
	session.Range3M: 90 * 24 * time.Hour,
}

// CutoffForRange returns the clip instant for a time range. The second
// return is false for RangeAll, which is the identity transform.
func CutoffForRange(r session.TimeRange, now time.Time) (time.Time, bool) {
	d, ok := rangeDurations[r]
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-d), true
}

// SeriesViews filters the raw series set by coin, clips each series to the
// active time range, and applies the log-scale transform when active. Series
// whose points fail to parse are skipped; series left empty by clipping are
// dropped (the renderer shows a placeholder when none remain).
func SeriesViews(snap *model.SeriesSnapshot, st session.State, now time.Time) []SeriesView {
	if snap == nil {
		return nil
	}
	cutoff, clip := CutoffForRange(st.Range, now)

	views := make([]SeriesView, 0, len(snap.Symbols))
	for _, s := range snap.Symbols {
		if st.Coin != "" && !strings.EqualFold(st.Coin, "all") && !strings.EqualFold(s.Symbol, st.Coin) {
			continue
		}
		points, err := s.Points()
		if err != nil {
			continue
		}

		plotted := make([]PlotPoint, 0, len(points))
		for _, p := range points {
			if clip && p.Time.Before(cutoff) {
				continue
			}
			value := p.Percent
			if st.LogScale {
				value = GrowthMultiplier(p.Percent)
			}
			plotted = append(plotted, PlotPoint{Time: p.Time, Value: value, Percent: p.Percent})
		}
		if len(plotted) == 0 {
			continue
		}
		views = append(views, SeriesView{
			Symbol: s.Symbol,
			Pair:   s.Pair,
			Bucket: s.Bucket,
			TSID:   s.TSID,
			Color:  s.Color,
			Points: plotted,
		})
	}
	return views
}
