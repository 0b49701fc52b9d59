package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BookingWindowDays != 14 {
		t.Errorf("expected 14-day booking window, got %d", cfg.BookingWindowDays)
	}
	if cfg.SlotFetchTimeout != 12*time.Second {
		t.Errorf("expected 12s slot fetch timeout, got %s", cfg.SlotFetchTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKING_WINDOW_DAYS", "21")
	t.Setenv("SLOT_FETCH_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.BookingWindowDays != 21 {
		t.Errorf("expected 21, got %d", cfg.BookingWindowDays)
	}
	if cfg.SlotFetchTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.SlotFetchTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("BOOKING_WINDOW_DAYS", "not-a-number")
	t.Setenv("REDIS_TLS", "maybe")

	cfg := Load()

	if cfg.BookingWindowDays != 14 {
		t.Errorf("expected fallback 14, got %d", cfg.BookingWindowDays)
	}
	if cfg.RedisTLS {
		t.Error("expected RedisTLS fallback false")
	}
}
