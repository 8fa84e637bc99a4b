package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.AlertDefaultThreshold != 80 {
			t.Errorf("expected default threshold 80, got %v", cfg.AlertDefaultThreshold)
		}
		if cfg.ForecastHistoryMonths != 6 {
			t.Errorf("expected 6 forecast history months, got %d", cfg.ForecastHistoryMonths)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected 24h expiry, got %v", cfg.JWTExpirationDur)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ALERT_DEFAULT_THRESHOLD", "75.5")
		t.Setenv("ALERT_CONCURRENCY", "8")
		t.Setenv("TRANSACTION_QUERY_LIMIT", "500")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.AlertDefaultThreshold != 75.5 {
			t.Errorf("expected 75.5, got %v", cfg.AlertDefaultThreshold)
		}
		if cfg.AlertConcurrency != 8 {
			t.Errorf("expected 8, got %d", cfg.AlertConcurrency)
		}
		if cfg.TransactionQueryLimit != 500 {
			t.Errorf("expected 500, got %d", cfg.TransactionQueryLimit)
		}
	})

	t.Run("invalid_values_fall_back", func(t *testing.T) {
		t.Setenv("ALERT_CONCURRENCY", "many")
		t.Setenv("ALERT_DEFAULT_THRESHOLD", "-3")
		t.Setenv("JWT_EXPIRES_IN", "soon")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.AlertConcurrency != 4 {
			t.Errorf("expected fallback 4, got %d", cfg.AlertConcurrency)
		}
		if cfg.AlertDefaultThreshold != 80 {
			t.Errorf("expected fallback 80, got %v", cfg.AlertDefaultThreshold)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected fallback 24h, got %v", cfg.JWTExpirationDur)
		}
	})
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
