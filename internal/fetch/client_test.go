package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestSnapshotSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/symbols/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"symbols": [{"symbol": "BTC", "ts_id": "1", "bucket_raw": "b1", "cumulative_return": 12.34}],
			"stats": {"total_symbols": 1, "avg_return": 12.34},
			"coin_stats": {"BTC": {"total_symbols": 1}}
		}`))
	}))

	snap, err := c.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Symbols) != 1 || snap.Symbols[0].Symbol != "BTC" {
		t.Fatalf("symbols = %#v", snap.Symbols)
	}
	if snap.Stats.AvgReturn != 12.34 {
		t.Fatalf("avg return = %v", snap.Stats.AvgReturn)
	}
	if _, ok := snap.CoinStats["BTC"]; !ok {
		t.Fatal("missing BTC coin stats")
	}
}

func TestSnapshotServiceReportedError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbols": [], "error": "scan failed"}`))
	}))

	if _, err := c.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error for service-reported failure")
	}
}

func TestSnapshotBadStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	if _, err := c.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestSnapshotInvalidJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbols": [`))
	}))

	if _, err := c.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestSyncStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sync/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"sync_in_progress": false, "thread_running": true, "last_sync": "2026-05-01T12:00:00Z"}`))
	}))

	status, err := c.SyncStatus(context.Background())
	if err != nil {
		t.Fatalf("SyncStatus: %v", err)
	}
	if status.State() != model.SyncActive {
		t.Fatalf("state = %q, want Active", status.State())
	}
	if _, ok := status.LastSyncTime(); !ok {
		t.Fatal("expected parseable last_sync")
	}
}

func TestStrategyDetailPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"symbol": "BTC", "bucket": "b1", "timestamps": [], "prices": []}`))
	}))

	if _, err := c.StrategyDetail(context.Background(), "b1", "205"); err != nil {
		t.Fatalf("StrategyDetail: %v", err)
	}
	if gotPath != "/api/data/b1/TS-205" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestTrackerChangeDetection(t *testing.T) {
	var tr Tracker

	recs := []model.StrategyRecord{{Symbol: "BTC", TSID: "1", BucketRaw: "b1", CumulativeReturn: 1.0}}

	changed, err := tr.Changed(recs)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Fatal("first observation must report a change")
	}

	// Identical record set: no change.
	changed, err = tr.Changed(recs)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if changed {
		t.Fatal("unchanged records must not report a change")
	}

	// Any field change anywhere triggers.
	recs[0].CumulativeReturn = 1.01
	changed, err = tr.Changed(recs)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Fatal("field change must report a change")
	}

	tr.Reset()
	changed, err = tr.Changed(recs)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Fatal("first observation after reset must report a change")
	}
}
