package config

import (
	"log/slog"
	"testing"
)

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SESSION_SECRET is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.DatabasePath != "./data/chore-buddy.db" {
		t.Errorf("expected default database path, got '%s'", cfg.DatabasePath)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got '%s'", cfg.Port)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("expected UTC location, got '%s'", cfg.Location)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for value, expected := range tests {
		cfg := Config{LogLevel: value}
		if got := cfg.SlogLevel(); got != expected {
			t.Errorf("level %q: expected %v, got %v", value, expected, got)
		}
	}
}
