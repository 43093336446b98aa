// Package model defines the wire and domain types shared by the data service
// and the dashboard client: strategy records, aggregate statistics, chart
// series, and sync status.
package model

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used throughout the data-service payloads.
const TimeLayout = "2006-01-02 15:04:05"

// Coins is the canonical set of tracked coins, in display order.
var Coins = []string{"BTC", "ETH", "SOL", "LTC"}

// Freshness buckets how long ago a strategy's data was last updated.
type Freshness string

const (
	FreshnessFresh     Freshness = "fresh"
	FreshnessStale     Freshness = "stale"
	FreshnessVeryStale Freshness = "very_stale"
)

// Freshness thresholds in minutes. A file up to 1h10m old counts as fresh,
// up to 2h10m as stale, anything older as very stale.
const (
	freshLimitMinutes = 70
	staleLimitMinutes = 130
)

// FreshnessFromMinutes maps a minutes-ago value onto a freshness bucket.
func FreshnessFromMinutes(minutesAgo int) Freshness {
	switch {
	case minutesAgo <= freshLimitMinutes:
		return FreshnessFresh
	case minutesAgo <= staleLimitMinutes:
		return FreshnessStale
	default:
		return FreshnessVeryStale
	}
}

// Position is the current direction of a strategy on its pair.
type Position string

const (
	PositionLong  Position = "LONG"
	PositionShort Position = "SHORT"
	PositionFlat  Position = "FLAT"
)

// PositionFromValue maps a signed position size onto its direction label.
func PositionFromValue(v float64) Position {
	switch {
	case v > 0:
		return PositionLong
	case v < 0:
		return PositionShort
	default:
		return PositionFlat
	}
}

// StrategyKey identifies one strategy instance. It is stable across refreshes
// and addresses the detail view.
type StrategyKey struct {
	BucketRaw string
	TSID      string
}

func (k StrategyKey) String() string {
	return k.BucketRaw + "/TS-" + k.TSID
}

// StrategyRecord is one strategy instance on one trading pair, as served by
// the summary endpoint.
type StrategyRecord struct {
	Symbol                  string    `json:"symbol"`
	SymbolPair              string    `json:"symbol_pair"`
	TradingPair             string    `json:"trading_pair"`
	TSID                    string    `json:"ts_id"`
	Bucket                  string    `json:"bucket"`
	BucketRaw               string    `json:"bucket_raw"`
	Position                Position  `json:"position"`
	PositionValue           int       `json:"position_value"`
	LastPrice               float64   `json:"last_price"`
	CumulativeReturn        float64   `json:"cumulative_return"`
	MaxReturn               float64   `json:"max_return"`
	Change24h               float64   `json:"change_24h"`
	Change7d                float64   `json:"change_7d"`
	ConsecutivePositiveDays int       `json:"consecutive_positive_days"`
	Freshness               Freshness `json:"freshness"`
	LastUpdate              string    `json:"last_update"`
	MinutesAgo              int       `json:"minutes_ago"`
}

// Key returns the stable identity of the record.
func (r StrategyRecord) Key() StrategyKey {
	return StrategyKey{BucketRaw: r.BucketRaw, TSID: r.TSID}
}

// AggregateStats summarizes a set of strategy records, either globally or
// scoped to one coin. It is always backend-supplied; the client never
// recomputes it.
type AggregateStats struct {
	TotalSymbols       int     `json:"total_symbols"`
	FreshSymbols       int     `json:"fresh_symbols"`
	FreshnessPercent   float64 `json:"freshness_percent"`
	AvgReturn          float64 `json:"avg_return"`
	MinReturn          float64 `json:"min_return"`
	MaxReturn          float64 `json:"max_return"`
	MedianReturn       float64 `json:"median_return"`
	PositiveCumulative int     `json:"positive_cumulative"`
	NegativeCumulative int     `json:"negative_cumulative"`
	Positive24h        int     `json:"positive_24h"`
	Negative24h        int     `json:"negative_24h"`
	ActivePositions    int     `json:"active_positions"`
	TotalBuckets       int     `json:"total_buckets,omitempty"`
}

// Snapshot is one complete, internally consistent pull of all strategy data.
// It is replaced wholesale on each successful fetch, never merged.
type Snapshot struct {
	Symbols   []StrategyRecord          `json:"symbols"`
	Stats     AggregateStats            `json:"stats"`
	CoinStats map[string]AggregateStats `json:"coin_stats"`
	Error     string                    `json:"error,omitempty"`
}

// SeriesPoint is one (timestamp, cumulative-return-percent) observation.
type SeriesPoint struct {
	Time    time.Time
	Percent float64
}

// SeriesData carries a series on the wire as parallel x/y arrays.
type SeriesData struct {
	X []string  `json:"x"`
	Y []float64 `json:"y"`
}

// StrategySeries is the chartable time series for one strategy, plus the
// identifiers and color needed to build a legend entry.
type StrategySeries struct {
	Symbol string     `json:"symbol"`
	Pair   string     `json:"pair"`
	Bucket string     `json:"bucket"`
	TSID   string     `json:"ts_id"`
	Color  string     `json:"color"`
	Data   SeriesData `json:"data"`
}

// Key returns the strategy identity of the series.
func (s StrategySeries) Key() StrategyKey {
	return StrategyKey{BucketRaw: s.Bucket, TSID: s.TSID}
}

// Points decodes the wire arrays into timestamp-ordered points. The x and y
// arrays must be the same length and x must parse with TimeLayout.
func (s StrategySeries) Points() ([]SeriesPoint, error) {
	if len(s.Data.X) != len(s.Data.Y) {
		return nil, fmt.Errorf("series %s: x/y length mismatch (%d vs %d)", s.Key(), len(s.Data.X), len(s.Data.Y))
	}
	points := make([]SeriesPoint, len(s.Data.X))
	for i, raw := range s.Data.X {
		t, err := time.Parse(TimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("series %s: parse timestamp %q: %w", s.Key(), raw, err)
		}
		points[i] = SeriesPoint{Time: t, Percent: s.Data.Y[i]}
	}
	return points, nil
}

// SeriesSnapshot is the full payload of the all-strategies series endpoint.
type SeriesSnapshot struct {
	Symbols   []StrategySeries `json:"symbols"`
	Timestamp string           `json:"timestamp"`
	Error     string           `json:"error,omitempty"`
}

// SyncState is the user-facing backend status derived from SyncStatus flags.
type SyncState string

const (
	SyncSyncing  SyncState = "Syncing"
	SyncActive   SyncState = "Active"
	SyncInactive SyncState = "Inactive"
)

// SyncStatus reports the backend sync loop's health.
type SyncStatus struct {
	SyncInProgress bool   `json:"sync_in_progress"`
	ThreadRunning  bool   `json:"thread_running"`
	LastSync       string `json:"last_sync,omitempty"`
	Error          string `json:"error,omitempty"`
}

// State collapses the flags into one of three mutually exclusive displays.
func (s SyncStatus) State() SyncState {
	switch {
	case s.SyncInProgress:
		return SyncSyncing
	case s.ThreadRunning:
		return SyncActive
	default:
		return SyncInactive
	}
}

// LastSyncTime parses the last-sync timestamp. The second return is false when
// the field is absent or unparseable.
func (s SyncStatus) LastSyncTime() (time.Time, bool) {
	if s.LastSync == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, TimeLayout} {
		if t, err := time.Parse(layout, s.LastSync); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StrategyMetrics summarizes one strategy's full history for the detail view.
type StrategyMetrics struct {
	LastPrice                 float64 `json:"last_price"`
	LastPosition              float64 `json:"last_position"`
	CumulativeReturn          float64 `json:"cumulative_return"`
	MaxReturn                 float64 `json:"max_return"`
	CumulativeReturnAfterFees float64 `json:"cumulative_return_after_fees"`
	MaxReturnAfterFees        float64 `json:"max_return_after_fees"`
	TotalFees                 float64 `json:"total_fees"`
	TotalPoints               int     `json:"total_points"`
	DisplayedPoints           int     `json:"displayed_points"`
	LastTimestamp             string  `json:"last_timestamp"`
}

// StrategyData is the detail payload for one strategy: aligned value arrays
// plus summary metrics.
type StrategyData struct {
	Timestamps                 []string        `json:"timestamps"`
	Prices                     []float64       `json:"prices"`
	Positions                  []float64       `json:"positions"`
	CumulativeReturns          []float64       `json:"cumulative_returns"`
	CumulativeReturnsAfterFees []float64       `json:"cumulative_returns_after_fees"`
	Metrics                    StrategyMetrics `json:"metrics"`
	Bucket                     string          `json:"bucket"`
	Symbol                     string          `json:"symbol"`
	Error                      string          `json:"error,omitempty"`
}

// BucketInfo describes one deployment bucket directory.
type BucketInfo struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
}
