package dataserver

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// frameRow is one CSV row after header normalization.
type frameRow struct {
	Timestamp string  `csv:"timestamp"`
	Close     float64 `csv:"close"`
	Position  float64 `csv:"position"`
}

// Frame is one strategy's full history with derived return columns. All
// slices share the same length and are ordered by timestamp ascending.
type Frame struct {
	Timestamps                []time.Time
	Closes                    []float64
	Positions                 []float64
	StrategyReturns           []float64
	CumulativeReturn          []float64
	CumulativeReturnAfterFees []float64
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Timestamps) }

// headerAliases maps the CSV header variants onto canonical column names.
var headerAliases = map[string]string{
	"close":      "close",
	"close time": "timestamp",
	"datetime":   "timestamp",
	"timestamp":  "timestamp",
	"position":   "position",
}

// normalizeHeader rewrites the header line so gocsv sees canonical column
// names regardless of the source's casing. Unrecognized columns keep their
// original names and are ignored during unmarshaling.
func normalizeHeader(data []byte) []byte {
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return data
	}
	header := strings.TrimRight(string(data[:idx]), "\r")
	cols := strings.Split(header, ",")
	for i, col := range cols {
		if canonical, ok := headerAliases[strings.ToLower(strings.TrimSpace(col))]; ok {
			cols[i] = canonical
		}
	}
	var out bytes.Buffer
	out.WriteString(strings.Join(cols, ","))
	out.WriteByte('\n')
	out.Write(data[idx+1:])
	return out.Bytes()
}

var timestampLayouts = []string{
	model.TimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

// LoadFrame reads one strategy CSV and derives the return columns: per-row
// price returns, strategy returns against the lagged position, and the
// cumulative products with and without transaction fees. Cumulative returns
// are capped to [-99%, +100%]. feePct is the fee percentage charged per unit
// of position change on a trade.
func LoadFrame(path string, feePct float64) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frame: read %s: %w", path, err)
	}

	var rows []frameRow
	if err := gocsv.UnmarshalBytes(normalizeHeader(data), &rows); err != nil {
		return nil, fmt.Errorf("frame: parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("frame: %s has no rows", path)
	}

	type parsedRow struct {
		ts       time.Time
		close    float64
		position float64
	}
	parsed := make([]parsedRow, 0, len(rows))
	for _, r := range rows {
		ts, err := parseTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("frame: %s: %w", path, err)
		}
		parsed = append(parsed, parsedRow{ts: ts, close: r.Close, position: r.Position})
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].ts.Before(parsed[j].ts) })

	n := len(parsed)
	f := &Frame{
		Timestamps:                make([]time.Time, n),
		Closes:                    make([]float64, n),
		Positions:                 make([]float64, n),
		StrategyReturns:           make([]float64, n),
		CumulativeReturn:          make([]float64, n),
		CumulativeReturnAfterFees: make([]float64, n),
	}

	cum, cumAfter := 1.0, 1.0
	for i, row := range parsed {
		f.Timestamps[i] = row.ts
		f.Closes[i] = row.close
		f.Positions[i] = row.position

		var ret, lag float64
		if i > 0 {
			prev := parsed[i-1]
			if prev.close != 0 {
				ret = (row.close - prev.close) / prev.close
			}
			lag = prev.position
		}
		if math.IsInf(ret, 0) || math.IsNaN(ret) {
			ret = 0
		}

		sr := lag * ret
		f.StrategyReturns[i] = sr

		var fee float64
		if change := math.Abs(row.position - lag); change != 0 {
			fee = (feePct / 100) * change
		}

		cum *= 1 + sr
		cumAfter *= 1 + (sr - fee)
		f.CumulativeReturn[i] = clampReturn(cum - 1)
		f.CumulativeReturnAfterFees[i] = clampReturn(cumAfter - 1)
	}
	return f, nil
}

func clampReturn(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -0.99 {
		return -0.99
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
