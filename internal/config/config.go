package config

import (
	"errors"
	"os"
	"time"
)

// Config holds all tool settings, populated from environment variables.
// Telegram credentials keep the ENV_-prefixed names earlier revisions of this
// tool used, so existing .env files keep working.
type Config struct {
	TelegramBotToken string
	TelegramChatID   string
	OutputDir        string
	LogLevel         string
	LogFormat        string
	FetchTimeout     time.Duration
	TelegramTimeout  time.Duration
	PushgatewayURL   string
}

// Load reads configuration from environment variables, applying defaults
// where unset. Telegram credentials are optional: without them the run still
// produces a waypoint file and only skips delivery.
func Load() (*Config, error) {
	fetchTimeout, err := parseTimeout("FETCH_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	telegramTimeout, err := parseTimeout("TELEGRAM_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramBotToken: os.Getenv("ENV_TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("ENV_TELEGRAM_CHAT_ID"),
		OutputDir:        envOrDefault("OUTPUT_DIR", "gpx"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "text"),
		FetchTimeout:     fetchTimeout,
		TelegramTimeout:  telegramTimeout,
		PushgatewayURL:   os.Getenv("PUSHGATEWAY_URL"),
	}, nil
}

// DeliveryEnabled reports whether both Telegram credentials are present.
func (c *Config) DeliveryEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

func parseTimeout(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
