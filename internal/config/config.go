// Package config loads environment-driven configuration for the dashboard
// client and the data service. A local .env file is honored when present.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DashboardConfig holds configuration for the terminal dashboard client.
type DashboardConfig struct {
	// Data service connection
	ServiceURL       string
	RequestTimeoutMS int

	// Refresh cadence
	PollIntervalSec int
	SyncCadenceSec  int

	// Preferences persistence (theme/accent only)
	PrefsPath string

	LogLevel string
	LogFile  string
}

// LoadDashboard reads dashboard configuration from environment variables and
// an optional .env file.
func LoadDashboard() (*DashboardConfig, error) {
	loadDotenv()

	cfg := &DashboardConfig{
		ServiceURL:       getEnvOrDefault("PULSEBOARD_SERVICE_URL", "http://127.0.0.1:5001"),
		RequestTimeoutMS: getEnvIntOrDefault("PULSEBOARD_REQUEST_TIMEOUT_MS", 10000),
		PollIntervalSec:  getEnvIntOrDefault("PULSEBOARD_POLL_INTERVAL_SEC", 30),
		SyncCadenceSec:   getEnvIntOrDefault("PULSEBOARD_SYNC_CADENCE_SEC", 300),
		PrefsPath:        getEnvOrDefault("PULSEBOARD_PREFS_PATH", ""),
		LogLevel:         strings.ToLower(getEnvOrDefault("PULSEBOARD_LOG_LEVEL", "info")),
		LogFile:          getEnvOrDefault("PULSEBOARD_LOG_FILE", "logs/dashboard.log"),
	}
	if cfg.PollIntervalSec < 5 {
		cfg.PollIntervalSec = 5
	}
	return cfg, nil
}

// ServerConfig holds configuration for the data service.
type ServerConfig struct {
	// Strategy CSV layout
	BucketsRoot       string
	TransactionFeePct float64

	// Series shaping
	MaxSeriesPoints int

	// Listener
	BindAddr         string
	PortCandidates   []string
	PortAutoFallback bool

	LogLevel string
	LogFile  string
}

// LoadServer reads data-service configuration from environment variables and
// an optional .env file.
func LoadServer() (*ServerConfig, error) {
	loadDotenv()

	cfg := &ServerConfig{
		BucketsRoot:       getEnvOrDefault("PULSEBOARD_BUCKETS_ROOT", "./buckets"),
		TransactionFeePct: getEnvFloatOrDefault("PULSEBOARD_TRANSACTION_FEE_PCT", 0.05),
		MaxSeriesPoints:   getEnvIntOrDefault("PULSEBOARD_MAX_SERIES_POINTS", 500),
		BindAddr:          getEnvOrDefault("PULSEBOARD_BIND_ADDR", "127.0.0.1:5001"),
		PortCandidates:    getEnvListOrDefault("PULSEBOARD_PORT_CANDIDATES", []string{"127.0.0.1:5001", "127.0.0.1:5002", "127.0.0.1:5003"}),
		PortAutoFallback:  getEnvBoolOrDefault("PULSEBOARD_PORT_AUTO_FALLBACK", true),
		LogLevel:          strings.ToLower(getEnvOrDefault("PULSEBOARD_LOG_LEVEL", "info")),
		LogFile:           getEnvOrDefault("PULSEBOARD_LOG_FILE", "logs/dataserver.log"),
	}
	if cfg.MaxSeriesPoints < 10 {
		cfg.MaxSeriesPoints = 10
	}
	return cfg, nil
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloatOrDefault(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvListOrDefault(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultVal
}
