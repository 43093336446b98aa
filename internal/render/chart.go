package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/dgnsrekt/pulseboard/internal/derive"
)

// ChartView carries the filtered series set plus the scale mode for the chart
// panel.
type ChartView struct {
	Series   []derive.SeriesView
	LogScale bool
	Width    int
	Height   int
}

const (
	defaultChartWidth  = 72
	defaultChartHeight = 16
)

var seriesMarks = []byte{'*', '+', 'o', 'x', '#', '@', '%', '&'}

// RenderASCII plots every series onto one character grid with an axis, a
// legend, and a scale footer. An empty series set yields an explanatory
// placeholder instead of axes.
func (v ChartView) RenderASCII() []string {
	width, height := v.Width, v.Height
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}

	if len(v.Series) == 0 {
		return []string{"  (no series match the current filter and time range)"}
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, s := range v.Series {
		for _, p := range s.Points {
			minV = math.Min(minV, p.Value)
			maxV = math.Max(maxV, p.Value)
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}

	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
	}

	for si, s := range v.Series {
		mark := seriesMarks[si%len(seriesMarks)]
		n := len(s.Points)
		for pi, p := range s.Points {
			x := 0
			if n > 1 {
				x = pi * (width - 1) / (n - 1)
			}
			y := int(math.Round((maxV - p.Value) / (maxV - minV) * float64(height-1)))
			if y < 0 {
				y = 0
			}
			if y >= height {
				y = height - 1
			}
			grid[y][x] = mark
		}
	}

	lines := make([]string, 0, height+len(v.Series)+2)
	for i, row := range grid {
		label := "          "
		if i == 0 {
			label = fmt.Sprintf("%9.2f ", maxV)
		} else if i == height-1 {
			label = fmt.Sprintf("%9.2f ", minV)
		}
		lines = append(lines, label+"|"+string(row))
	}
	lines = append(lines, strings.Repeat(" ", 10)+"+"+strings.Repeat("-", width))

	for si, s := range v.Series {
		mark := seriesMarks[si%len(seriesMarks)]
		last := s.Points[len(s.Points)-1]
		lines = append(lines, fmt.Sprintf("  %c %s  last %s", mark, s.Label(), FormatPercent(last.Percent)))
	}

	scale := "linear"
	if v.LogScale {
		scale = "log (growth multiplier)"
	}
	lines = append(lines, "  scale: "+scale)
	return lines
}
