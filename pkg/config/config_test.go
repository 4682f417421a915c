package config

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestReadEnvConfig(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("TELEGRAM_ADMIN_IDS", "11,22")
	t.Setenv("ADMIN_USER_IDS", "a,b")
	t.Setenv("REPO_DB_HOST", "db")
	t.Setenv("SHEET_SYNC_INTERVAL", "90s")

	var cfg Config
	assert.Equal(t, nil, ReadEnvConfig(&cfg))
	assert.Equal(t, "db", cfg.Repo.Host)
	assert.Equal(t, "5432", cfg.Repo.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, []int64{11, 22}, cfg.TelegramAdminIDs)
	assert.Equal(t, []string{"a", "b"}, cfg.AdminUserIDs)
	assert.Equal(t, 90*time.Second, cfg.SheetSyncInterval)
}

func TestReadEnvConfigNeedsABot(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("TELEGRAM_TOKEN", "")

	var cfg Config
	assert.NotEqual(t, nil, ReadEnvConfig(&cfg))
}

func TestReadEnvConfigRejectsUnknownStorage(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "d")
	t.Setenv("STORAGE", "redis")

	var cfg Config
	assert.NotEqual(t, nil, ReadEnvConfig(&cfg))
}
