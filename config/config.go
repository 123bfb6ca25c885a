package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application settings.
type Config struct {
	BotToken           string
	DatabasePath       string
	LogLevel           string
	PollTimeout        int
	DraftTTL           time.Duration
	DraftSweepSchedule string
	NameLookups        int
}

// ErrMissingToken is returned when no bot token is configured.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:           getEnv("TELEGRAM_BOT_TOKEN", getEnv("BOT_TOKEN", "")),
		DatabasePath:       getEnv("DATABASE_PATH", "./data/events_bot.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DraftSweepSchedule: getEnv("DRAFT_SWEEP_SCHEDULE", "*/10 * * * *"),
	}

	if cfg.BotToken == "" {
		return nil, ErrMissingToken
	}

	var err error
	if cfg.PollTimeout, err = getEnvInt("POLL_TIMEOUT", 60); err != nil {
		return nil, err
	}
	if cfg.NameLookups, err = getEnvInt("NAME_LOOKUP_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.NameLookups < 1 {
		return nil, fmt.Errorf("NAME_LOOKUP_CONCURRENCY must be at least 1, got %d", cfg.NameLookups)
	}

	ttl := getEnv("DRAFT_TTL", "24h")
	cfg.DraftTTL, err = time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid DRAFT_TTL %q: %w", ttl, err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, valueStr, err)
	}

	return value, nil
}
