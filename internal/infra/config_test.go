package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("FAL_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.FalBaseURL != "https://queue.fal.run" {
		t.Fatalf("FalBaseURL mismatch: got %q", cfg.FalBaseURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("PollInterval mismatch: got %v", cfg.PollInterval)
	}
	if cfg.PollAttempts != 300 {
		t.Fatalf("PollAttempts mismatch: got %d", cfg.PollAttempts)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL missing")
	}
}

func TestLoadConfigRejectsZeroPollBudget(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POLL_MAX_ATTEMPTS", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when POLL_MAX_ATTEMPTS is zero")
	}
}

func TestLoadConfigPollOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POLL_INTERVAL_SECONDS", "1")
	t.Setenv("POLL_MAX_ATTEMPTS", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PollInterval != time.Second || cfg.PollAttempts != 5 {
		t.Fatalf("poll overrides not applied: %v %d", cfg.PollInterval, cfg.PollAttempts)
	}
}
