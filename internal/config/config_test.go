package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "PORT", "LOG_LEVEL", "REMINDER_INTERVAL", "TELEGRAM_CHAT_ID", "TELEGRAM_TOKEN"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.ReminderInterval)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.False(t, cfg.UsesDatabase())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rentbook")
	t.Setenv("REMINDER_INTERVAL", "15m")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesDatabase())
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, 15*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("REMINDER_INTERVAL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REMINDER_INTERVAL", "1h")
	t.Setenv("TELEGRAM_CHAT_ID", "abc")
	_, err = Load()
	assert.Error(t, err)
}
