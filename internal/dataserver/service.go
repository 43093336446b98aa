package dataserver

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dgnsrekt/pulseboard/internal/config"
	"github.com/dgnsrekt/pulseboard/internal/model"
)

// coinColors assigns a chart color to each tracked coin.
var coinColors = map[string]string{
	"BTC":     "#f7931a",
	"ETH":     "#627eea",
	"SOL":     "#00d18c",
	"LTC":     "#bebebe",
	"DEFAULT": "#999999",
}

func colorFor(symbol string) string {
	if c, ok := coinColors[symbol]; ok {
		return c
	}
	return coinColors["DEFAULT"]
}

// Service computes the dashboard payloads from the bucket directories on disk.
type Service struct {
	cfg    config.ServerConfig
	cache  *frameCache
	logger *slog.Logger
	now    func() time.Time

	startedAt time.Time
}

// NewService builds a service over cfg.BucketsRoot. logger may be nil.
func NewService(cfg config.ServerConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		cfg:    cfg,
		cache:  newFrameCache(),
		logger: logger,
		now:    time.Now,
	}
	s.startedAt = s.now()
	return s
}

// Uptime reports how long the service has been running.
func (s *Service) Uptime() time.Duration {
	return s.now().Sub(s.startedAt)
}

// DataVersion reports the frame cache's load counter.
func (s *Service) DataVersion() int64 {
	return s.cache.dataVersion()
}

// Buckets lists the bucket directories under the configured root.
func (s *Service) Buckets() ([]model.BucketInfo, error) {
	buckets, err := ListBuckets(s.cfg.BucketsRoot)
	if err != nil {
		return nil, &CodedError{Code: CodeLoadFailure, Message: err.Error()}
	}
	return buckets, nil
}

// SyncStatus reports the data-refresh loop's health. Strategy files are
// written by an external sync job, so the service itself is never mid-sync.
func (s *Service) SyncStatus() model.SyncStatus {
	return model.SyncStatus{
		SyncInProgress: false,
		ThreadRunning:  true,
		LastSync:       s.now().UTC().Format(time.RFC3339),
	}
}

// loadedSymbol pairs a discovered strategy file with its derived frame.
type loadedSymbol struct {
	bucket model.BucketInfo
	info   SymbolInfo
	frame  *Frame
}

// loadAll walks every bucket and loads every strategy frame, skipping files
// that fail to parse.
func (s *Service) loadAll() ([]loadedSymbol, []model.BucketInfo, error) {
	buckets, err := s.Buckets()
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	var loaded []loadedSymbol
	for _, bucket := range buckets {
		bucketPath := filepath.Join(s.cfg.BucketsRoot, bucket.Path)
		symbols, err := DiscoverSymbols(bucketPath, now)
		if err != nil {
			s.logger.Warn("bucket scan failed", "bucket", bucket.Name, "error", err)
			continue
		}
		for _, info := range symbols {
			key := bucket.Name + "/TS-" + info.TSID
			frame, err := s.cache.load(key, filepath.Join(bucketPath, info.Filename), s.cfg.TransactionFeePct)
			if err != nil {
				s.logger.Warn("frame load failed", "key", key, "error", err)
				continue
			}
			loaded = append(loaded, loadedSymbol{bucket: bucket, info: info, frame: frame})
		}
	}
	return loaded, buckets, nil
}

// Summary builds the full snapshot: one record per strategy plus global and
// per-coin aggregate statistics.
func (s *Service) Summary() (model.Snapshot, error) {
	loaded, _, err := s.loadAll()
	if err != nil {
		return model.Snapshot{}, err
	}

	records := make([]model.StrategyRecord, 0, len(loaded))
	for _, ls := range loaded {
		f := ls.frame
		lastPos := f.LastPosition()
		records = append(records, model.StrategyRecord{
			Symbol:                  ls.info.Symbol,
			SymbolPair:              fmt.Sprintf("%s (%s)", ls.info.Symbol, ls.info.Pair),
			TradingPair:             ls.info.Pair,
			TSID:                    ls.info.TSID,
			Bucket:                  ls.bucket.DisplayName,
			BucketRaw:               ls.bucket.Name,
			Position:                model.PositionFromValue(lastPos),
			PositionValue:           int(lastPos),
			LastPrice:               round2(f.LastClose()),
			CumulativeReturn:        round2(f.NetReturn()),
			MaxReturn:               round2(f.MaxNetReturn()),
			Change24h:               round2(f.Change24h()),
			Change7d:                round2(f.Change7d()),
			ConsecutivePositiveDays: f.ConsecutivePositiveDays(),
			Freshness:               ls.info.Freshness,
			LastUpdate:              ls.info.LastUpdate.Format("15:04:05"),
			MinutesAgo:              ls.info.MinutesAgo,
		})
	}

	snap := model.Snapshot{
		Symbols:   records,
		Stats:     aggregate(records, true),
		CoinStats: make(map[string]model.AggregateStats),
	}
	for _, coin := range model.Coins {
		var scoped []model.StrategyRecord
		for _, r := range records {
			if r.Symbol == coin {
				scoped = append(scoped, r)
			}
		}
		if len(scoped) > 0 {
			snap.CoinStats[coin] = aggregate(scoped, false)
		}
	}
	return snap, nil
}

// aggregate summarizes a record set. withBuckets adds the distinct bucket
// count, which only the global stats carry.
func aggregate(records []model.StrategyRecord, withBuckets bool) model.AggregateStats {
	if len(records) == 0 {
		return model.AggregateStats{}
	}

	returns := make([]float64, len(records))
	stats := model.AggregateStats{TotalSymbols: len(records)}
	buckets := make(map[string]struct{})
	for i, r := range records {
		returns[i] = r.CumulativeReturn
		if r.Freshness == model.FreshnessFresh {
			stats.FreshSymbols++
		}
		if r.CumulativeReturn > 0 {
			stats.PositiveCumulative++
		} else if r.CumulativeReturn < 0 {
			stats.NegativeCumulative++
		}
		if r.Change24h > 0 {
			stats.Positive24h++
		} else if r.Change24h < 0 {
			stats.Negative24h++
		}
		if r.Position != model.PositionFlat {
			stats.ActivePositions++
		}
		buckets[r.BucketRaw] = struct{}{}
	}

	stats.AvgReturn = round2(stat.Mean(returns, nil))
	stats.MinReturn = round2(floats.Min(returns))
	stats.MaxReturn = round2(floats.Max(returns))

	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)
	stats.MedianReturn = round2(stat.Quantile(0.5, stat.LinInterp, sorted, nil))

	stats.FreshnessPercent = math.Round(float64(stats.FreshSymbols) / float64(stats.TotalSymbols) * 100)
	if withBuckets {
		stats.TotalBuckets = len(buckets)
	}
	return stats
}

// AllSeries returns one downsampled fee-adjusted return series per strategy,
// sorted by symbol then pair for a stable legend order.
func (s *Service) AllSeries() (model.SeriesSnapshot, error) {
	loaded, _, err := s.loadAll()
	if err != nil {
		return model.SeriesSnapshot{}, err
	}

	series := make([]model.StrategySeries, 0, len(loaded))
	for _, ls := range loaded {
		f := ls.frame
		idx := SampleIndices(f.Len(), s.cfg.MaxSeriesPoints)
		data := model.SeriesData{
			X: make([]string, len(idx)),
			Y: make([]float64, len(idx)),
		}
		for i, j := range idx {
			data.X[i] = f.Timestamps[j].Format(model.TimeLayout)
			data.Y[i] = round2(f.CumulativeReturnAfterFees[j] * 100)
		}
		series = append(series, model.StrategySeries{
			Symbol: ls.info.Symbol,
			Pair:   ls.info.Pair,
			Bucket: ls.bucket.Name,
			TSID:   ls.info.TSID,
			Color:  colorFor(ls.info.Symbol),
			Data:   data,
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		if series[i].Symbol != series[j].Symbol {
			return series[i].Symbol < series[j].Symbol
		}
		return series[i].Pair < series[j].Pair
	})

	return model.SeriesSnapshot{
		Symbols:   series,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}, nil
}

// StrategyData returns the full detail payload for one strategy within a
// bucket. name is either a "TS-<id>" identifier or a coin symbol; symbols
// resolve to the first matching strategy. The series is resampled to hourly
// resolution.
func (s *Service) StrategyData(bucket, name string) (*model.StrategyData, error) {
	bucketPath := filepath.Join(s.cfg.BucketsRoot, bucket)
	symbols, err := DiscoverSymbols(bucketPath, s.now())
	if err != nil {
		return nil, &CodedError{Code: CodeNotFound, Message: fmt.Sprintf("bucket %q not found", bucket)}
	}

	var match *SymbolInfo
	if tsID, ok := strings.CutPrefix(name, "TS-"); ok {
		for i := range symbols {
			if symbols[i].TSID == tsID {
				match = &symbols[i]
				break
			}
		}
	} else {
		for i := range symbols {
			if strings.EqualFold(symbols[i].Symbol, name) {
				match = &symbols[i]
				break
			}
		}
	}
	if match == nil {
		return nil, &CodedError{Code: CodeNotFound, Message: fmt.Sprintf("strategy %q not found in bucket %q", name, bucket)}
	}

	key := bucket + "/TS-" + match.TSID
	frame, err := s.cache.load(key, filepath.Join(bucketPath, match.Filename), s.cfg.TransactionFeePct)
	if err != nil {
		return nil, &CodedError{Code: CodeLoadFailure, Message: fmt.Sprintf("load %s: %v", key, err)}
	}

	idx := HourlyIndices(frame)
	data := &model.StrategyData{
		Timestamps:                 make([]string, len(idx)),
		Prices:                     make([]float64, len(idx)),
		Positions:                  make([]float64, len(idx)),
		CumulativeReturns:          make([]float64, len(idx)),
		CumulativeReturnsAfterFees: make([]float64, len(idx)),
		Bucket:                     bucket,
		Symbol:                     match.Symbol,
	}
	for i, j := range idx {
		data.Timestamps[i] = frame.Timestamps[j].Format(model.TimeLayout)
		data.Prices[i] = frame.Closes[j]
		data.Positions[i] = frame.Positions[j]
		data.CumulativeReturns[i] = round2(frame.CumulativeReturn[j] * 100)
		data.CumulativeReturnsAfterFees[i] = round2(frame.CumulativeReturnAfterFees[j] * 100)
	}

	metrics := ComputeMetrics(frame)
	metrics.DisplayedPoints = len(idx)
	data.Metrics = metrics
	return data, nil
}
