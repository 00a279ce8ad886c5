package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/config"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"TELEGRAM_TOKEN", "DB_PATH", "HTTP_ADDR", "FREEZE_RATE_AT_CREATION", "WORKERS", "QUEUE_SIZE", "ADMIN_CHAT_IDS"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":8080")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "payroll-bot.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 32, cfg.QueueSize)
	assert.False(t, cfg.FreezeRateAtCreation)
	assert.Empty(t, cfg.AdminChatIDs)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("FREEZE_RATE_AT_CREATION", "true")
	t.Setenv("WORKERS", "8")
	t.Setenv("ADMIN_CHAT_IDS", "101, 202")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.FreezeRateAtCreation)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.AdminChatIDs[202])
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	_, err := config.LoadConfig()
	assert.ErrorIs(t, err, config.ErrNoFrontend{})

	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ADMIN_CHAT_IDS", "abc")
	_, err = config.LoadConfig()
	assert.Error(t, err)

	t.Setenv("ADMIN_CHAT_IDS", "")
	t.Setenv("WORKERS", "0")
	_, err = config.LoadConfig()
	assert.Error(t, err)
}
