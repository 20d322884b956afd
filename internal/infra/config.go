package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string

	FalBaseURL string
	// FalAPIKey overrides the credential stored for the owner principal. Used
	// in development; production resolves the key per request.
	FalAPIKey string

	GeoIPDBPath string
	StoragePath string

	PollInterval time.Duration
	PollAttempts int
	// SweepStaleAfter is how long a GENERATING row may go without an update
	// before the recovery sweep considers its poller dead.
	SweepStaleAfter time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		FalBaseURL:       getEnv("FAL_BASE_URL", "https://queue.fal.run"),
		FalAPIKey:        os.Getenv("FAL_API_KEY"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		StoragePath:      getEnv("STORAGE_PATH", "./storage"),
		PollInterval:     time.Second * time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 2)),
		PollAttempts:     getEnvInt("POLL_MAX_ATTEMPTS", 300),
		SweepStaleAfter:  time.Second * time.Duration(getEnvInt("SWEEP_STALE_AFTER_SECONDS", 120)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins:   []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be positive")
	}

	if cfg.PollAttempts <= 0 {
		return nil, fmt.Errorf("POLL_MAX_ATTEMPTS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
