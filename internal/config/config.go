package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath   string
	SessionSecret  string
	LogLevel       string
	Port           string
	Location       *time.Location
	AllowedOrigins []string
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables or defaults")
	}

	config := Config{
		DatabasePath:   envOrDefault("DATABASE_PATH", "./data/chore-buddy.db"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		Port:           envOrDefault("PORT", "8080"),
		AllowedOrigins: splitList(envOrDefault("ALLOWED_ORIGINS", "*")),
	}

	if config.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	location, err := time.LoadLocation(envOrDefault("TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("loading TIMEZONE: %w", err)
	}
	config.Location = location

	return config, nil
}

func (config Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
