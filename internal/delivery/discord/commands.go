package discord

import "github.com/bwmarrin/discordgo"

// Option names shared by several commands.
const (
	optCode       = "code"
	optName       = "name"
	optLocation   = "location"
	optPassword   = "password"
	optMaxPlayers = "max_players"
	optTeam       = "team"
	optPlayer     = "player"
	optByTeam     = "by_team"
	optByPlayer   = "by_player"
	optStatus     = "status"
	optLimit      = "limit"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func (b *Bot) registerCommands() {
	b.addCommands(
		newGamesCommand(),
		newGameCommand(),
		newTeamsCommand(),
		newStandingsCommand(),
		newCountsCommand(),

		newGameCreateCommand(),
		newGameStartCommand(),
		newGameFinishCommand(),
		newGameDeleteCommand(),
		newTeamCreateCommand(),
		newPlayerAddCommand(),
		newEliminateCommand(),
		newReviveCommand(),
		newSpectateCommand(),
		newTeamStatusCommand(),
		newTeamDeleteCommand(),
		newExportCommand(),
		newSyncSheetCommand(),
	)
}

func codeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type: discordgo.ApplicationCommandOptionString, Name: optCode, Description: "Game code", Required: true,
	}
}

func teamOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type: discordgo.ApplicationCommandOptionString, Name: name, Description: description, Required: required,
	}
}

func newGamesCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "games",
		Description: "List all games",
	}
}

func newGameCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "game",
		Description: "Game details and rules",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newTeamsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "teams",
		Description: "Teams and players of a game",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newStandingsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "standings",
		Description: "Team leaderboard",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			{Type: discordgo.ApplicationCommandOptionInteger, Name: optLimit, Description: "How many teams to show", Required: false},
		},
	}
}

func newCountsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "counts",
		Description: "Players and teams still in the game",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newGameCreateCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "game_create",
		Description: "Create a game (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: optName, Description: "Game name", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: optLocation, Description: "City or area", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: optPassword, Description: "Password players use to join", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: optMaxPlayers, Description: "Player limit", Required: false},
		},
	}
}

func newGameStartCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "game_start",
		Description: "Start a game (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newGameFinishCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "game_finish",
		Description: "Finish a game (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newGameDeleteCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "game_delete",
		Description: "Delete a game with its roster and messages (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newTeamCreateCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "team_create",
		Description: "Create a team (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optName, "Team name", true),
		},
	}
}

func newPlayerAddCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "player_add",
		Description: "Add a player to a team (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optTeam, "Team name", true),
			{Type: discordgo.ApplicationCommandOptionString, Name: optPlayer, Description: "Player name", Required: true},
		},
	}
}

func newEliminateCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "eliminate",
		Description: "Record an elimination (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optTeam, "Team of the eliminated player", true),
			{Type: discordgo.ApplicationCommandOptionString, Name: optPlayer, Description: "Eliminated player", Required: true},
			teamOption(optByTeam, "Team of the eliminator", false),
			{Type: discordgo.ApplicationCommandOptionString, Name: optByPlayer, Description: "Eliminator", Required: false},
		},
	}
}

func newReviveCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "revive",
		Description: "Bring an eliminated player back (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optTeam, "Team name", true),
			{Type: discordgo.ApplicationCommandOptionString, Name: optPlayer, Description: "Player name", Required: true},
		},
	}
}

func newSpectateCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "spectate",
		Description: "Move a player to spectators (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optTeam, "Team name", true),
			{Type: discordgo.ApplicationCommandOptionString, Name: optPlayer, Description: "Player name", Required: true},
		},
	}
}

func newTeamStatusCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "team_status",
		Description: "Mark a team active or eliminated (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optTeam, "Team name", true),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optStatus,
				Description: "New status",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Active", Value: "active"},
					{Name: "Eliminated", Value: "eliminated"},
				},
			},
		},
	}
}

func newTeamDeleteCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "team_delete",
		Description: "Delete a team and its players (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			codeOption(),
			teamOption(optTeam, "Team name", true),
		},
	}
}

func newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "export",
		Description: "Export standings to Excel (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}

func newSyncSheetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sync_sheet",
		Description: "Sync standings to Google Sheets (admins only)",
		Options:     []*discordgo.ApplicationCommandOption{codeOption()},
	}
}
