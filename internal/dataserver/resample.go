package dataserver

import "time"

// SampleIndices picks at most max evenly spaced row indices out of n,
// stepping by n/max from the start. All indices are returned when n fits.
func SampleIndices(n, max int) []int {
	if n <= 0 {
		return nil
	}
	if max <= 0 || n <= max {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	step := n / max
	idx := make([]int, 0, max+1)
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	return idx
}

// HourlyIndices resamples a frame to hourly resolution by keeping the last
// row of each hour.
func HourlyIndices(f *Frame) []int {
	n := f.Len()
	if n == 0 {
		return nil
	}
	var idx []int
	for i := 0; i < n; i++ {
		hour := f.Timestamps[i].Truncate(time.Hour)
		if i+1 < n && f.Timestamps[i+1].Truncate(time.Hour).Equal(hour) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}
