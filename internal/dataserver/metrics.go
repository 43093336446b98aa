package dataserver

import (
	"math"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// Row offsets for minute-resolution data.
const (
	rowsPerDay  = 1440
	rowsPerWeek = 10080
)

// round2 rounds to two decimal places, matching the wire precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LastClose returns the most recent close price.
func (f *Frame) LastClose() float64 {
	if f.Len() == 0 {
		return 0
	}
	return f.Closes[f.Len()-1]
}

// LastPosition returns the most recent position value.
func (f *Frame) LastPosition() float64 {
	if f.Len() == 0 {
		return 0
	}
	return f.Positions[f.Len()-1]
}

// changeFromOffset computes the percentage change of the last close versus
// the close offset rows earlier. fallbackEarliest substitutes the first row
// when the history is shorter than the offset; without it the change is zero.
func (f *Frame) changeFromOffset(offset int, fallbackEarliest bool) float64 {
	n := f.Len()
	if n == 0 {
		return 0
	}
	last := f.Closes[n-1]
	var base float64
	switch {
	case n > offset:
		base = f.Closes[n-offset]
	case fallbackEarliest:
		base = f.Closes[0]
	default:
		return 0
	}
	if base == 0 {
		return 0
	}
	return (last - base) / base * 100
}

// Change24h is the percent price change over the last 24 hours of minute
// data; shorter histories report zero.
func (f *Frame) Change24h() float64 {
	return f.changeFromOffset(rowsPerDay, false)
}

// Change7d is the percent price change over the last 7 days; shorter
// histories fall back to the earliest available close.
func (f *Frame) Change7d() float64 {
	return f.changeFromOffset(rowsPerWeek, true)
}

// NetReturn is the latest fee-adjusted cumulative return, in percent.
func (f *Frame) NetReturn() float64 {
	if f.Len() == 0 {
		return 0
	}
	return f.CumulativeReturnAfterFees[f.Len()-1] * 100
}

// MaxNetReturn is the peak fee-adjusted cumulative return, in percent.
func (f *Frame) MaxNetReturn() float64 {
	max := math.Inf(-1)
	for _, v := range f.CumulativeReturnAfterFees {
		if v > max {
			max = v
		}
	}
	if math.IsInf(max, -1) {
		return 0
	}
	return max * 100
}

// ConsecutivePositiveDays counts, from the most recent day backwards, how
// many calendar days closed above their open.
func (f *Frame) ConsecutivePositiveDays() int {
	n := f.Len()
	if n == 0 {
		return 0
	}

	type daily struct{ first, last float64 }
	var days []daily
	var current string

	for i := 0; i < n; i++ {
		date := f.Timestamps[i].Format("2006-01-02")
		if date != current {
			days = append(days, daily{first: f.Closes[i], last: f.Closes[i]})
			current = date
		} else {
			days[len(days)-1].last = f.Closes[i]
		}
	}

	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if d.first == 0 || (d.last-d.first)/d.first <= 0 {
			break
		}
		streak++
	}
	return streak
}

// ComputeMetrics summarizes the frame for the detail endpoint.
func ComputeMetrics(f *Frame) model.StrategyMetrics {
	if f.Len() == 0 {
		return model.StrategyMetrics{}
	}

	grossLast := f.CumulativeReturn[f.Len()-1] * 100
	grossMax := math.Inf(-1)
	for _, v := range f.CumulativeReturn {
		if v > grossMax {
			grossMax = v
		}
	}

	netLast := f.NetReturn()
	return model.StrategyMetrics{
		LastPrice:                 f.LastClose(),
		LastPosition:              f.LastPosition(),
		CumulativeReturn:          grossLast,
		MaxReturn:                 grossMax * 100,
		CumulativeReturnAfterFees: netLast,
		MaxReturnAfterFees:        f.MaxNetReturn(),
		TotalFees:                 grossLast - netLast,
		TotalPoints:               f.Len(),
		DisplayedPoints:           f.Len(),
		LastTimestamp:             f.Timestamps[f.Len()-1].Format(model.TimeLayout),
	}
}
