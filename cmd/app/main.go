package main

import (
	"context"
	"embed"

	"assassin/internal/application"
	"assassin/internal/delivery/discord"
	"assassin/internal/delivery/telegram"
	"assassin/internal/repository"
	"assassin/pkg/config"
	"assassin/pkg/logger"
	service "assassin/pkg/services"
	"assassin/pkg/sheets"

	"github.com/joho/godotenv"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	repos, err := openRepository(&cfg, log)
	if err != nil {
		log.Error("failed to init storage: %s", err.Error())
		return
	}
	defer repos.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A nil interface keeps Google Sheets features switched off.
	var sheetsClient sheets.Client
	if cfg.GoogleCredentialsFile != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Error("failed to init google sheets: %s", err.Error())
			return
		}
		sheetsClient = client
	} else {
		log.Warn("GOOGLE_CREDENTIALS_FILE is not set, sheet sync is disabled")
	}

	services := application.NewService(repos, sheetsClient, cfg.GoogleOwnerEmail, log)

	mgr := service.NewManager(log)

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(&cfg, services, log.With("bot", "discord"))
		if err != nil {
			log.Error("failed to init discord bot: %s", err.Error())
			return
		}
		mgr.AddService(bot)
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAdminIDs, services, log.With("bot", "telegram"))
		if err != nil {
			log.Error("failed to init telegram bot: %s", err.Error())
			return
		}
		mgr.AddService(bot)
	}

	if sheetsClient != nil {
		mgr.AddService(application.NewSheetSyncJob(cfg.SheetSyncInterval, services.StandingsService, log))
	}

	if err := mgr.Run(ctx); err != nil {
		log.Error("service manager: %s", err.Error())
		return
	}
	log.Info("stopped")
}

func openRepository(cfg *config.Config, log *logger.Logger) (*repository.Repository, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return repository.NewMemoryRepository(), nil
	}

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		return nil, err
	}

	log.Info("running migrations...")
	version, err := repository.RunMigrations(db, migrationFS)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Info("schema at version %d", version)

	return repository.NewRepository(db), nil
}
