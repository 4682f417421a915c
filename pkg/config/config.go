package config

import (
	"fmt"
	"time"

	"assassin/internal/repository"

	"github.com/caarlos0/env/v11"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Repo     repository.Config `envPrefix:"REPO_"`
	Storage  string            `env:"STORAGE" envDefault:"postgres"`
	LogLevel string            `env:"LOGGER_LEVEL" envDefault:"debug"`

	DiscordToken   string   `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string   `env:"DISCORD_GUILD_ID" envDefault:""`
	AdminUserIDs   []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	TelegramToken    string  `env:"TELEGRAM_TOKEN" envDefault:""`
	TelegramAdminIDs []int64 `env:"TELEGRAM_ADMIN_IDS" envSeparator:","`

	GoogleCredentialsFile string        `env:"GOOGLE_CREDENTIALS_FILE" envDefault:""`
	GoogleOwnerEmail      string        `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
	SheetSyncInterval     time.Duration `env:"SHEET_SYNC_INTERVAL" envDefault:"5m"`
}

func ReadEnvConfig(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return err
	}
	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}
	if cfg.DiscordToken == "" && cfg.TelegramToken == "" {
		return fmt.Errorf("at least one of DISCORD_TOKEN or TELEGRAM_TOKEN is required")
	}
	return nil
}
