package dataserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// Strategy CSV filenames carry the TS and T identifiers. Placeholder files
// end in _PH.csv and are skipped.
var csvNameRe = regexp.MustCompile(`^STGC2OGTrim2Model_TS-(\d+)_T-(\d+)_.*\.csv$`)

// SymbolInfo is one discovered strategy file within a bucket.
type SymbolInfo struct {
	Symbol     string
	Pair       string
	TSID       string
	TID        string
	Filename   string
	Freshness  model.Freshness
	LastUpdate time.Time
	MinutesAgo int
}

// tsMetadata is the TS-<id>.json sidecar. The hedge symbol lives either in
// the first model's args or at the top level.
type tsMetadata struct {
	HedgeSymbol string `json:"hedge_symbol"`
	Models      []struct {
		Args struct {
			HedgeSymbol string `json:"hedge_symbol"`
		} `json:"args"`
	} `json:"models"`
}

// readHedgeSymbol reads the sidecar's hedge symbol, e.g. "BTC-USD-SWAP".
// Missing or unreadable sidecars return an empty string.
func readHedgeSymbol(bucketPath, tsID string) string {
	data, err := os.ReadFile(filepath.Join(bucketPath, "TS-"+tsID+".json"))
	if err != nil {
		return ""
	}
	var meta tsMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return ""
	}
	if len(meta.Models) > 0 && meta.Models[0].Args.HedgeSymbol != "" {
		return meta.Models[0].Args.HedgeSymbol
	}
	return meta.HedgeSymbol
}

// splitHedgeSymbol parses "BTC-USD-SWAP" into symbol "BTC" and pair "USD".
func splitHedgeSymbol(hedge string) (symbol, pair string) {
	parts := strings.Split(hedge, "-")
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return hedge, "USD"
}

// DiscoverSymbols scans one bucket directory for strategy CSVs and resolves
// each one's symbol, pair, and freshness.
func DiscoverSymbols(bucketPath string, now time.Time) ([]SymbolInfo, error) {
	entries, err := os.ReadDir(bucketPath)
	if err != nil {
		return nil, fmt.Errorf("discover: read %s: %w", bucketPath, err)
	}

	var symbols []SymbolInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, "_PH.csv") {
			continue
		}
		m := csvNameRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		tsID, tID := m[1], m[2]

		info, err := entry.Info()
		if err != nil {
			// File moved mid-scan; skip it.
			continue
		}

		symbol, pair := "Unknown-"+tsID, "USD"
		if hedge := readHedgeSymbol(bucketPath, tsID); hedge != "" {
			symbol, pair = splitHedgeSymbol(hedge)
		}

		minutesAgo := int(now.Sub(info.ModTime()).Minutes())
		symbols = append(symbols, SymbolInfo{
			Symbol:     symbol,
			Pair:       pair,
			TSID:       tsID,
			TID:        tID,
			Filename:   name,
			Freshness:  model.FreshnessFromMinutes(minutesAgo),
			LastUpdate: info.ModTime(),
			MinutesAgo: minutesAgo,
		})
	}

	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].Symbol != symbols[j].Symbol {
			return symbols[i].Symbol < symbols[j].Symbol
		}
		return symbols[i].TSID < symbols[j].TSID
	})
	return symbols, nil
}

// ListBuckets returns the bucket directories under root, skipping hidden
// entries.
func ListBuckets(root string) ([]model.BucketInfo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("discover: read root %s: %w", root, err)
	}

	buckets := make([]model.BucketInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		buckets = append(buckets, model.BucketInfo{
			Name:        entry.Name(),
			Path:        entry.Name(),
			DisplayName: displayName(entry.Name()),
		})
	}
	return buckets, nil
}

// displayName turns "crypto_bucket_1" into "Crypto Bucket 1".
func displayName(raw string) string {
	words := strings.Split(strings.ReplaceAll(raw, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
