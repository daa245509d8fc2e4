package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/akosarev/weather-forecast/internal/logger"
)

type AppConfig struct {
	// APIBaseURL is the upstream forecast API serving raw observation
	// batches by place.
	APIBaseURL string

	// Cache behaviour.
	CacheTTL    time.Duration
	CachePrefix string

	// DataPath is the bbolt file backing the cache; empty selects the
	// in-memory medium.
	DataPath string

	// DefaultCity is warmed at startup when no cities are tracked yet.
	DefaultCity string

	// RefreshInterval controls how often tracked cities are re-fetched.
	RefreshInterval time.Duration

	// Outbound HTTP behaviour.
	HTTPTimeout   time.Duration
	UpstreamRPS   float64
	UpstreamBurst int

	Port     string
	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.APIBaseURL = os.Getenv("WEATHER_API_URL")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("WEATHER_API_URL is required")
	}

	ttl, err := getenvDuration("CACHE_TTL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl
	cfg.CachePrefix = getenvDefault("CACHE_PREFIX", "forecast.")
	cfg.DataPath = getenvDefault("DATA_PATH", "forecast.db")

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "Moscow")

	interval, err := getenvDuration("REFRESH_INTERVAL", "30m")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.UpstreamRPS = getenvFloat("UPSTREAM_RPS", 1)
	cfg.UpstreamBurst = getenvInt("UPSTREAM_BURST", 1)

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
