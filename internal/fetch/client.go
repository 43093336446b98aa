// Package fetch is the HTTP client side of the dashboard: it pulls snapshot,
// sync-status, and series payloads from the data service and detects whether
// the strategy set changed between pulls.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

// Client talks to the data service. All methods honor the supplied context
// and report failures as errors; callers keep their prior data on any error.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("fetch: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fetch: read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: %s: status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("fetch: decode %s: %w", path, err)
	}
	return nil
}

// Snapshot pulls the full strategy summary. A service-reported error field is
// a non-fatal failure, returned as an error with no snapshot.
func (c *Client) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := c.getJSON(ctx, "/api/symbols/summary", &snap); err != nil {
		return nil, err
	}
	if snap.Error != "" {
		return nil, fmt.Errorf("fetch: service error: %s", snap.Error)
	}
	return &snap, nil
}

// SyncStatus pulls the backend sync-loop status.
func (c *Client) SyncStatus(ctx context.Context) (model.SyncStatus, error) {
	var status model.SyncStatus
	if err := c.getJSON(ctx, "/api/sync/status", &status); err != nil {
		return model.SyncStatus{}, err
	}
	if status.Error != "" {
		return model.SyncStatus{}, fmt.Errorf("fetch: service error: %s", status.Error)
	}
	return status, nil
}

// Series pulls the all-strategies cumulative-return series.
func (c *Client) Series(ctx context.Context) (*model.SeriesSnapshot, error) {
	var snap model.SeriesSnapshot
	if err := c.getJSON(ctx, "/api/cumulative_returns/all", &snap); err != nil {
		return nil, err
	}
	if snap.Error != "" {
		return nil, fmt.Errorf("fetch: service error: %s", snap.Error)
	}
	return &snap, nil
}

// StrategyDetail pulls one strategy's full history for the detail view.
func (c *Client) StrategyDetail(ctx context.Context, bucket, tsID string) (*model.StrategyData, error) {
	path := "/api/data/" + url.PathEscape(bucket) + "/" + url.PathEscape("TS-"+tsID)
	var data model.StrategyData
	if err := c.getJSON(ctx, path, &data); err != nil {
		return nil, err
	}
	if data.Error != "" {
		return nil, fmt.Errorf("fetch: service error: %s", data.Error)
	}
	return &data, nil
}
