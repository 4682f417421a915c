// Package delivery holds the text rendering shared by the chat bots.
package delivery

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"assassin/internal/application"
	"assassin/internal/models"
	"assassin/internal/repository"
	"assassin/internal/standings"
)

var errorMessages = []struct {
	err error
	msg string
}{
	{repository.ErrGameNotFound, "Game not found. Check the code."},
	{standings.ErrTeamNotFound, "Team not found."},
	{standings.ErrPlayerNotFound, "Player not found."},
	{standings.ErrDuplicateTeam, "A team with that name already exists."},
	{standings.ErrAlreadyEliminated, "That player is already eliminated."},
	{standings.ErrNotEliminated, "That player is not eliminated."},
	{standings.ErrNotActive, "That player is not active."},
	{standings.ErrSelfElimination, "A player cannot eliminate themselves."},
	{application.ErrWrongPassword, "Wrong password."},
	{application.ErrGameFull, "This game is full."},
	{application.ErrGameFinished, "This game is already finished."},
	{application.ErrAlreadyInGame, "You are already in a game. Leave it first."},
	{application.ErrNotInGame, "You are not in this game."},
	{application.ErrAlreadyOnTeam, "You are already on a team."},
	{application.ErrNotOnTeam, "Join a team first."},
	{application.ErrAmbiguousPlayer, "Several players have that name. Ask an admin to record it."},
	{application.ErrSheetsDisabled, "Google Sheets is not configured."},
}

// ErrorMessage turns a service error into text for players and admins.
func ErrorMessage(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	if errors.Is(err, standings.ErrInvalidInput) || errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, application.ErrGameState) {
		return capitalize(err.Error()) + "."
	}
	return "Something went wrong: " + err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func MedalEmoji(position int) string {
	switch position {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "▪️"
	}
}

func FormatStandings(rows []standings.Standing, limit int) string {
	if len(rows) == 0 {
		return "No teams yet."
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	var sb strings.Builder
	for i, st := range rows {
		line := fmt.Sprintf("%s %d. %s — %d pts (%d/%d active)",
			MedalEmoji(i), st.Rank, st.Team.Name, st.Points, st.Team.ActivePlayers(), len(st.Team.Players))
		if st.Team.Status == standings.TeamEliminated {
			line += " ☠️"
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatCounts(c standings.Counts) string {
	return fmt.Sprintf("Players: %d total • %d in game • %d out • %d spectating\nTeams: %d total • %d in game • %d out",
		c.TotalPlayers, c.PlayersInGame, c.PlayersOut, c.Spectators,
		c.TotalTeams, c.TeamsInGame, c.TeamsOut)
}

func FormatTeams(teams []standings.Team) string {
	if len(teams) == 0 {
		return "No teams yet."
	}

	var sb strings.Builder
	for _, t := range teams {
		sb.WriteString(fmt.Sprintf("%s (%s) — %d Total • %d Active\n", t.Name, t.Status, len(t.Players), t.ActivePlayers()))
		for _, p := range t.Players {
			sb.WriteString(fmt.Sprintf("  • %s — %s, %d kills\n", p.Name, p.Status, p.Kills))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatGame(g *models.Game) string {
	return fmt.Sprintf("%s [%s]\nStatus: %s\nPlayers: %d/%d\nLocation: %s\n%s",
		g.Name, g.Code, g.Status, g.CurrentPlayers, g.MaxPlayers, g.Location, application.LocationURL(g))
}

func FormatGameList(games []models.Game) string {
	if len(games) == 0 {
		return "No games yet."
	}
	var sb strings.Builder
	for _, g := range games {
		sb.WriteString(fmt.Sprintf("`%s` %s — %s, %d/%d players\n", g.Code, g.Name, g.Status, g.CurrentPlayers, g.MaxPlayers))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatRules(rules []string) string {
	if len(rules) == 0 {
		return "No rules set."
	}
	var sb strings.Builder
	for i, r := range rules {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, r))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatMessages(msgs []models.Message) string {
	if len(msgs) == 0 {
		return "No messages yet."
	}
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", m.CreatedAt.Format("02.01 15:04"), m.Author, m.Text))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatElimination(res *application.EliminationResult) string {
	msg := fmt.Sprintf("%s (%s) is out.", res.Target.Name, res.TargetTeam)
	if res.Eliminator != nil {
		if res.Credited {
			msg += fmt.Sprintf(" Kill credited to %s (%d kills).", res.Eliminator.Name, res.Eliminator.Kills)
		} else {
			msg += fmt.Sprintf(" %s is no longer active, no kill credited.", res.Eliminator.Name)
		}
	}
	return msg
}

// Truncate keeps messages under a platform limit.
func Truncate(msg string, max int) string {
	const suffix = "\n…"
	if len(msg) <= max {
		return msg
	}
	cut := max - len(suffix)
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + suffix
}
