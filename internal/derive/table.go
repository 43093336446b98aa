package derive

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dgnsrekt/pulseboard/internal/model"
	"github.com/dgnsrekt/pulseboard/internal/session"
)

// columnSpec pairs a sortable column with its value extractor. Exactly one of
// str or num is set; str columns compare lexicographically, num columns
// numerically.
type columnSpec struct {
	str func(model.StrategyRecord) string
	num func(model.StrategyRecord) float64
}

var columns = map[session.SortColumn]columnSpec{
	session.ColSymbol:    {str: func(r model.StrategyRecord) string { return r.Symbol }},
	session.ColBucket:    {str: func(r model.StrategyRecord) string { return r.BucketRaw }},
	session.ColPair:      {str: func(r model.StrategyRecord) string { return r.TradingPair }},
	session.ColFreshness: {num: func(r model.StrategyRecord) float64 { return float64(r.MinutesAgo) }},
	session.ColPrice:     {num: func(r model.StrategyRecord) float64 { return r.LastPrice }},
	session.ColPosition:  {str: func(r model.StrategyRecord) string { return string(r.Position) }},
	session.ColReturn:    {num: func(r model.StrategyRecord) float64 { return r.CumulativeReturn }},
	session.ColChange24h: {num: func(r model.StrategyRecord) float64 { return r.Change24h }},
	session.ColChange7d:  {num: func(r model.StrategyRecord) float64 { return r.Change7d }},
	session.ColMaxReturn: {num: func(r model.StrategyRecord) float64 { return r.MaxReturn }},
	session.ColStreak:    {num: func(r model.StrategyRecord) float64 { return float64(r.ConsecutivePositiveDays) }},
}

// FilterCoin keeps records whose symbol matches the coin code exactly,
// case-insensitively. "all" (or empty) is the identity filter.
func FilterCoin(records []model.StrategyRecord, coin string) []model.StrategyRecord {
	out := make([]model.StrategyRecord, 0, len(records))
	if coin == "" || strings.EqualFold(coin, "all") {
		return append(out, records...)
	}
	for _, r := range records {
		if strings.EqualFold(r.Symbol, coin) {
			out = append(out, r)
		}
	}
	return out
}

// FilterSearch keeps records where the term matches, case-insensitively and
// by substring, any of symbol, trading pair, position, or bucket. An empty
// term is the identity filter.
func FilterSearch(records []model.StrategyRecord, term string) []model.StrategyRecord {
	out := make([]model.StrategyRecord, 0, len(records))
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append(out, records...)
	}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Symbol), term) ||
			strings.Contains(strings.ToLower(r.TradingPair), term) ||
			strings.Contains(strings.ToLower(string(r.Position)), term) ||
			strings.Contains(strings.ToLower(r.Bucket), term) ||
			strings.Contains(strings.ToLower(r.BucketRaw), term) {
			out = append(out, r)
		}
	}
	return out
}

// defaultLess is the canonical default order: symbol ascending, then
// bucketRaw ascending, then numeric-aware TS id. It is deterministic for any
// record set regardless of fetch arrival order.
func defaultLess(a, b model.StrategyRecord) bool {
	if a.Symbol != b.Symbol {
		return a.Symbol < b.Symbol
	}
	if a.BucketRaw != b.BucketRaw {
		return a.BucketRaw < b.BucketRaw
	}
	ai, aerr := strconv.Atoi(a.TSID)
	bi, berr := strconv.Atoi(b.TSID)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a.TSID < b.TSID
}

// Rows derives the table row list: coin filter, then search filter, then
// sort. With no explicit sort column the default order applies. With an
// explicit column, rows are first placed in default order and then stably
// sorted by the column, so ties keep the deterministic default order rather
// than fetch arrival order.
func Rows(snap *model.Snapshot, st session.State) []model.StrategyRecord {
	if snap == nil {
		return nil
	}
	rows := FilterSearch(FilterCoin(snap.Symbols, st.Coin), st.Search)

	sort.SliceStable(rows, func(i, j int) bool { return defaultLess(rows[i], rows[j]) })

	spec, ok := columns[st.SortColumn]
	if st.SortColumn == session.ColNone || !ok {
		return rows
	}

	desc := st.SortDirection == session.SortDesc
	sort.SliceStable(rows, func(i, j int) bool {
		var less, eq bool
		if spec.num != nil {
			vi, vj := spec.num(rows[i]), spec.num(rows[j])
			less, eq = vi < vj, vi == vj
		} else {
			vi, vj := spec.str(rows[i]), spec.str(rows[j])
			less, eq = vi < vj, vi == vj
		}
		if eq {
			return false
		}
		if desc {
			return !less
		}
		return less
	})
	return rows
}
