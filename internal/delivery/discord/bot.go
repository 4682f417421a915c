package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"assassin/internal/application"
	"assassin/pkg/config"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	guildID  string
	adminIDs map[string]struct{}
	commands []*discordgo.ApplicationCommand
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	b := &Bot{
		session:  s,
		services: services,
		logger:   logger,
		guildID:  cfg.DiscordGuildID,
		adminIDs: adminSet(cfg.AdminUserIDs),
	}
	b.registerCommands()
	return b, nil
}

func adminSet(ids []string) map[string]struct{} {
	admins := make(map[string]struct{})
	for _, id := range ids {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}
	return admins
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	b.logger.Info("discord bot connected, registering %d slash commands", len(b.commands))
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands); err != nil {
		b.logger.Error("failed to register commands: %v", err)
	} else {
		b.logger.Info("slash commands registered")
	}
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	<-ctx.Done()
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Warn("close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name

	switch name {
	case "games":
		b.handleGames(s, i.Interaction)
		return
	case "game":
		b.handleGame(s, i.Interaction)
		return
	case "teams":
		b.handleTeams(s, i.Interaction)
		return
	case "standings":
		b.handleStandings(s, i.Interaction)
		return
	case "counts":
		b.handleCounts(s, i.Interaction)
		return
	}

	var handler func(*discordgo.Session, *discordgo.Interaction)
	switch name {
	case "game_create":
		handler = b.handleGameCreate
	case "game_start":
		handler = b.handleGameStart
	case "game_finish":
		handler = b.handleGameFinish
	case "game_delete":
		handler = b.handleGameDelete
	case "team_create":
		handler = b.handleTeamCreate
	case "player_add":
		handler = b.handlePlayerAdd
	case "eliminate":
		handler = b.handleEliminate
	case "revive":
		handler = b.handleRevive
	case "spectate":
		handler = b.handleSpectate
	case "team_status":
		handler = b.handleTeamStatus
	case "team_delete":
		handler = b.handleTeamDelete
	case "export":
		handler = b.handleExport
	case "sync_sheet":
		handler = b.handleSyncSheet
	default:
		b.logger.Warn("unknown command %q", name)
		return
	}
	b.ensureAdmin(s, i.Interaction, handler)
}
