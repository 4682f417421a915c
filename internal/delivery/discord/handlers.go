package discord

import (
	"bytes"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"assassin/internal/application"
	"assassin/internal/delivery"
	"assassin/internal/models"
	"assassin/internal/standings"
)

// lookupGame resolves the code option, answering the interaction on failure.
func (b *Bot) lookupGame(s *discordgo.Session, i *discordgo.Interaction, opts options) (*models.Game, bool) {
	game, err := b.services.GameService.GetGame(opts.code())
	if err != nil {
		b.respondError(s, i, err)
		return nil, false
	}
	return game, true
}

func (b *Bot) handleGames(s *discordgo.Session, i *discordgo.Interaction) {
	games, err := b.services.GameService.ListGames()
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Games",
		Description: delivery.FormatGameList(games),
		Color:       colorBlue,
	})
}

func (b *Bot) handleGame(s *discordgo.Session, i *discordgo.Interaction) {
	game, ok := b.lookupGame(s, i, optionMap(i.ApplicationCommandData().Options))
	if !ok {
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s [%s]", game.Name, game.Code),
		Description: delivery.FormatRules(game.Rules),
		Color:       statusColor(game.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: string(game.Status), Inline: true},
			{Name: "Players", Value: fmt.Sprintf("%d/%d", game.CurrentPlayers, game.MaxPlayers), Inline: true},
			{Name: "Location", Value: fmt.Sprintf("[%s](%s)", game.Location, application.LocationURL(game)), Inline: false},
		},
	})
}

func (b *Bot) handleTeams(s *discordgo.Session, i *discordgo.Interaction) {
	game, ok := b.lookupGame(s, i, optionMap(i.ApplicationCommandData().Options))
	if !ok {
		return
	}

	teams, err := b.services.RosterService.Teams(game.ID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Teams: %s", game.Name),
		Description: delivery.FormatTeams(teams),
		Color:       colorBlue,
	})
}

func (b *Bot) handleStandings(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	rows, err := b.services.StandingsService.Leaderboard(game.ID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Standings: %s", game.Name),
		Description: delivery.FormatStandings(rows, opts.int(optLimit, topTeamsLimit)),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: "1 point per kill"},
	})
}

func (b *Bot) handleCounts(s *discordgo.Session, i *discordgo.Interaction) {
	game, ok := b.lookupGame(s, i, optionMap(i.ApplicationCommandData().Options))
	if !ok {
		return
	}

	counts, err := b.services.StandingsService.Counts(game.ID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Counts: %s", game.Name),
		Color: colorGray,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: fmt.Sprintf("%d", counts.TotalPlayers), Inline: true},
			{Name: "In game", Value: fmt.Sprintf("%d", counts.PlayersInGame), Inline: true},
			{Name: "Out", Value: fmt.Sprintf("%d", counts.PlayersOut), Inline: true},
			{Name: "Spectating", Value: fmt.Sprintf("%d", counts.Spectators), Inline: true},
			{Name: "Teams", Value: fmt.Sprintf("%d total • %d in game • %d out", counts.TotalTeams, counts.TeamsInGame, counts.TeamsOut), Inline: false},
		},
	})
}

func (b *Bot) handleGameCreate(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, err := b.services.GameService.CreateGame(application.CreateGameInput{
		Name:       opts.string(optName),
		Location:   opts.string(optLocation),
		Password:   opts.string(optPassword),
		MaxPlayers: opts.int(optMaxPlayers, 0),
		HostID:     userKey(interactionUserID(i)),
		HostName:   interactionUserName(i),
	})
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	// The password only goes back to the admin who set it.
	b.respondMessage(s, i, fmt.Sprintf("Game **%s** created. Code: `%s`", game.Name, game.Code), true)
}

func (b *Bot) handleGameStart(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, err := b.services.GameService.StartGame(opts.code())
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Game **%s** has started. Good luck!", game.Name), false)
}

func (b *Bot) handleGameFinish(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, err := b.services.GameService.FinishGame(opts.code())
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	msg := fmt.Sprintf("Game **%s** is finished.", game.Name)
	if rows, err := b.services.StandingsService.Leaderboard(game.ID); err == nil && len(rows) > 0 {
		msg += "\n\n" + delivery.FormatStandings(rows, topTeamsLimit)
	}
	b.respondMessage(s, i, msg, false)
}

func (b *Bot) handleGameDelete(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	if err := b.services.GameService.DeleteGame(opts.code()); err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Game `%s` deleted.", opts.code()), true)
}

func (b *Bot) handleTeamCreate(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	team, err := b.services.RosterService.CreateTeam(game.ID, opts.string(optName), "")
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Team **%s** created in %s.", team.Name, game.Name), false)
}

func (b *Bot) handlePlayerAdd(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	player, err := b.services.RosterService.AddPlayer(game.ID, opts.string(optTeam), opts.string(optPlayer))
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("**%s** joined team **%s**.", player.Name, opts.string(optTeam)), false)
}

func (b *Bot) handleEliminate(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	res, err := b.services.RosterService.Eliminate(game.ID, application.EliminationInput{
		Team:     opts.string(optTeam),
		Player:   opts.string(optPlayer),
		ByTeam:   opts.string(optByTeam),
		ByPlayer: opts.string(optByPlayer),
	})
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Elimination",
		Description: delivery.FormatElimination(res),
		Color:       colorRed,
	})
}

func (b *Bot) handleRevive(s *discordgo.Session, i *discordgo.Interaction) {
	b.updatePlayer(s, i, b.services.RosterService.Revive, "**%s** is back in the game.")
}

func (b *Bot) handleSpectate(s *discordgo.Session, i *discordgo.Interaction) {
	b.updatePlayer(s, i, b.services.RosterService.Spectate, "**%s** is now spectating.")
}

func (b *Bot) updatePlayer(s *discordgo.Session, i *discordgo.Interaction,
	op func(gameID, teamName, playerName string) (standings.Player, error), format string) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	player, err := op(game.ID, opts.string(optTeam), opts.string(optPlayer))
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf(format, player.Name), false)
}

func (b *Bot) handleTeamStatus(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	status, err := standings.ParseTeamStatus(opts.string(optStatus))
	if err != nil {
		b.respondError(s, i, err)
		return
	}
	if err := b.services.RosterService.SetTeamStatus(game.ID, opts.string(optTeam), status); err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Team **%s** is now %s.", opts.string(optTeam), status), false)
}

func (b *Bot) handleTeamDelete(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	if err := b.services.RosterService.DeleteTeam(game.ID, opts.string(optTeam)); err != nil {
		b.respondError(s, i, err)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Team **%s** deleted.", opts.string(optTeam)), false)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	b.deferResponse(s, i)

	data, name, err := b.services.StandingsService.ExcelReport(game.ID)
	if err != nil {
		b.logger.Error("export error: %v", err)
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{"Export failed: " + delivery.ErrorMessage(err)}[0],
		})
		return
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &[]string{"Your report is ready!"}[0],
		Files: []*discordgo.File{
			{Name: name, ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Reader: bytes.NewReader(data)},
		},
	})
}

func (b *Bot) handleSyncSheet(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	game, ok := b.lookupGame(s, i, opts)
	if !ok {
		return
	}

	b.deferResponse(s, i)

	url, err := b.services.StandingsService.SyncToGoogleSheet(game.ID)
	if err != nil {
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{"Sync failed: " + delivery.ErrorMessage(err)}[0],
		})
		return
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &[]string{fmt.Sprintf("Sheet updated!\nLink: %s", url)}[0],
	})
}
