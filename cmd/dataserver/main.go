package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dgnsrekt/pulseboard/internal/config"
	"github.com/dgnsrekt/pulseboard/internal/dataserver"
	"github.com/dgnsrekt/pulseboard/internal/netutil"
)

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		slog.Debug("log directory creation failed", "error", err)
	}

	logWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting data service",
		"buckets_root", cfg.BucketsRoot,
		"transaction_fee_pct", cfg.TransactionFeePct,
		"max_series_points", cfg.MaxSeriesPoints,
		"bind_addr", cfg.BindAddr,
	)

	addr, err := netutil.SelectBindAddr(cfg.BindAddr, cfg.PortCandidates, cfg.PortAutoFallback)
	if err != nil {
		slog.Error("No usable bind address", "error", err)
		os.Exit(1)
	}

	svc := dataserver.NewService(*cfg, slog.Default())
	server := &http.Server{
		Addr:    addr,
		Handler: dataserver.NewServer(svc),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Data service listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-sigCh:
		slog.Info("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("Graceful shutdown failed", "error", err)
		}
	}
	slog.Info("Data service stopped")
}
