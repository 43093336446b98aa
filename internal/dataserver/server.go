package dataserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgnsrekt/pulseboard/internal/model"
)

type healthOutput struct {
	Body struct {
		Status        string `json:"status"`
		UptimeSeconds int64  `json:"uptime_seconds"`
		DataVersion   int64  `json:"data_version"`
	}
}

type summaryOutput struct {
	Body model.Snapshot
}

type syncStatusOutput struct {
	Body model.SyncStatus
}

type allSeriesOutput struct {
	Body model.SeriesSnapshot
}

type strategyDataInput struct {
	Bucket string `path:"bucket"`
	Symbol string `path:"symbol"`
}

type strategyDataOutput struct {
	Body model.StrategyData
}

type bucketsOutput struct {
	Body []model.BucketInfo
}

// NewServer builds the HTTP handler exposing the dashboard data API.
func NewServer(svc *Service) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("Pulseboard Data API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service liveness check",
		Tags:        []string{"system"},
	}, func(ctx context.Context, _ *struct{}) (*healthOutput, error) {
		out := &healthOutput{}
		out.Body.Status = "ok"
		out.Body.UptimeSeconds = int64(svc.Uptime().Seconds())
		out.Body.DataVersion = svc.DataVersion()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "symbols-summary",
		Method:      http.MethodGet,
		Path:        "/api/symbols/summary",
		Summary:     "All strategy records with aggregate statistics",
		Tags:        []string{"symbols"},
	}, func(ctx context.Context, _ *struct{}) (*summaryOutput, error) {
		snap, err := svc.Summary()
		if err != nil {
			return nil, mapErr(err)
		}
		return &summaryOutput{Body: snap}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "sync-status",
		Method:      http.MethodGet,
		Path:        "/api/sync/status",
		Summary:     "Data refresh loop status",
		Tags:        []string{"system"},
	}, func(ctx context.Context, _ *struct{}) (*syncStatusOutput, error) {
		return &syncStatusOutput{Body: svc.SyncStatus()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "cumulative-returns-all",
		Method:      http.MethodGet,
		Path:        "/api/cumulative_returns/all",
		Summary:     "Downsampled cumulative return series for every strategy",
		Tags:        []string{"series"},
	}, func(ctx context.Context, _ *struct{}) (*allSeriesOutput, error) {
		series, err := svc.AllSeries()
		if err != nil {
			return nil, mapErr(err)
		}
		return &allSeriesOutput{Body: series}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "strategy-data",
		Method:      http.MethodGet,
		Path:        "/api/data/{bucket}/{symbol}",
		Summary:     "Full detail series and metrics for one strategy",
		Tags:        []string{"series"},
	}, func(ctx context.Context, input *strategyDataInput) (*strategyDataOutput, error) {
		data, err := svc.StrategyData(input.Bucket, input.Symbol)
		if err != nil {
			return nil, mapErr(err)
		}
		return &strategyDataOutput{Body: *data}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-buckets",
		Method:      http.MethodGet,
		Path:        "/api/buckets",
		Summary:     "Deployment bucket directories",
		Tags:        []string{"symbols"},
	}, func(ctx context.Context, _ *struct{}) (*bucketsOutput, error) {
		buckets, err := svc.Buckets()
		if err != nil {
			return nil, mapErr(err)
		}
		return &bucketsOutput{Body: buckets}, nil
	})

	return router
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case CodeValidation:
			return huma.Error400BadRequest(coded.Message)
		case CodeNotFound:
			return huma.Error404NotFound(coded.Message)
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
