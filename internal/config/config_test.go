package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.TelegramBotToken)
	assert.Empty(t, cfg.TelegramChatID)
	assert.Equal(t, "gpx", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.TelegramTimeout)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.False(t, cfg.DeliveryEnabled())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ENV_TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ENV_TELEGRAM_CHAT_ID", "-100456")
	t.Setenv("OUTPUT_DIR", "/tmp/waypoints")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("TELEGRAM_TIMEOUT", "1m")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgw:9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramBotToken)
	assert.Equal(t, "-100456", cfg.TelegramChatID)
	assert.Equal(t, "/tmp/waypoints", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Minute, cfg.TelegramTimeout)
	assert.Equal(t, "http://pushgw:9091", cfg.PushgatewayURL)
	assert.True(t, cfg.DeliveryEnabled())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("TELEGRAM_TIMEOUT", "-5s")
	_, err := Load()
	require.Error(t, err)
}

func TestDeliveryEnabled_RequiresBoth(t *testing.T) {
	t.Setenv("ENV_TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.DeliveryEnabled())
}
