package main

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dgnsrekt/pulseboard/internal/config"
	"github.com/dgnsrekt/pulseboard/internal/controller"
	"github.com/dgnsrekt/pulseboard/internal/fetch"
	"github.com/dgnsrekt/pulseboard/internal/render"
	"github.com/dgnsrekt/pulseboard/internal/session"
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
	cfg, err := config.LoadDashboard()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		slog.Debug("log directory creation failed", "error", err)
	}

	// Stdout belongs to the dashboard surface, so logs go to the file only.
	logWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}
	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting dashboard",
		"service_url", cfg.ServiceURL,
		"poll_interval_sec", cfg.PollIntervalSec,
		"sync_cadence_sec", cfg.SyncCadenceSec,
	)

	prefsPath := cfg.PrefsPath
	if prefsPath == "" {
		if p, err := session.DefaultPrefsPath(); err == nil {
			prefsPath = p
		} else {
			slog.Warn("preference path unavailable", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := controller.New(controller.Options{
		Client:       fetch.NewClient(cfg.ServiceURL, time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
		Surface:      render.NewTermSurface(os.Stdout),
		Logger:       slog.Default(),
		PollInterval: time.Duration(cfg.PollIntervalSec) * time.Second,
		SyncCadence:  time.Duration(cfg.SyncCadenceSec) * time.Second,
		PrefsPath:    prefsPath,
	})

	// Shutdown on interrupt; suspend and resume polling when the terminal
	// stops and continues the process.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	visCh := make(chan os.Signal, 1)
	signal.Notify(visCh, syscall.SIGTSTP, syscall.SIGCONT)

	go func() {
		for {
			select {
			case <-sigCh:
				slog.Info("Shutdown signal received")
				cancel()
				return
			case sig := <-visCh:
				app.SetVisible(sig == syscall.SIGCONT)
			}
		}
	}()

	// Stdin lines are the command surface.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			cmd, err := session.Parse(line)
			if err != nil {
				slog.Debug("unrecognized command", "line", line, "error", err)
				continue
			}
			app.Dispatch(cmd)
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("stdin read failed", "error", err)
		}
		cancel()
	}()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Dashboard exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Dashboard stopped")
}
