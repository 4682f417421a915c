package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"assassin/internal/application"
	"assassin/internal/delivery"
	"assassin/internal/models"
)

const helpText = "Senior Assassin Bot\n\n" +
	"/games - Open games\n" +
	"/create_game - Host a new game\n" +
	"/join CODE PASSWORD - Join a game\n" +
	"/leave - Leave your game\n" +
	"/mygame - Your game\n" +
	"/teams - Teams and players\n" +
	"/create_team NAME - Start a team\n" +
	"/join_team NAME - Join a team\n" +
	"/kill NAME - Report an elimination\n" +
	"/standings - Leaderboard\n" +
	"/counts - Who is still in\n" +
	"/location - Where the game is played\n" +
	"/rules - Game rules\n" +
	"/say TEXT - Post to the game hub\n" +
	"/hub - Latest hub messages"

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		text := helpText
		if b.isAdmin(chatID) {
			text += "\n\nYou receive a copy of every reported elimination."
		}
		b.sendMessage(chatID, text, kbNone)
	case "games":
		b.handleGames(chatID)
	case "create_game":
		b.handleCreateGame(msg)
	case "join":
		b.handleJoin(msg, args)
	case "leave":
		b.handleLeave(msg)
	case "mygame":
		b.handleMyGame(msg)
	case "teams":
		b.handleTeams(msg)
	case "create_team":
		b.handleCreateTeam(msg, args)
	case "join_team":
		b.handleJoinTeam(msg, args)
	case "kill":
		b.handleKill(msg, args)
	case "standings":
		b.handleStandings(msg)
	case "counts":
		b.handleCounts(msg)
	case "location":
		b.handleLocation(msg)
	case "rules":
		b.handleRules(msg)
	case "say":
		b.handleSay(msg, args)
	case "hub":
		b.handleHub(msg)
	default:
		b.sendMessage(chatID, "Unknown command. Use /start to see the commands.", kbNone)
	}
}

// currentGame answers the chat itself when the user has no game.
func (b *Bot) currentGame(msg *tgbotapi.Message) (*models.Game, *models.Member, bool) {
	game, member, err := b.services.GameService.CurrentGame(userKey(msg.From.ID))
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return nil, nil, false
	}
	return game, member, true
}

func (b *Bot) handleGames(chatID int64) {
	games, err := b.services.GameService.ListGames()
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	var open []models.Game
	for _, g := range games {
		if g.Status != models.GameFinished {
			open = append(open, g)
		}
	}
	b.sendMessage(chatID, delivery.FormatGameList(open), kbNone)
}

func (b *Bot) handleCreateGame(msg *tgbotapi.Message) {
	if _, _, err := b.services.GameService.CurrentGame(userKey(msg.From.ID)); err == nil {
		b.sendError(msg.Chat.ID, application.ErrAlreadyInGame)
		return
	}
	reply, kb := b.wizards.start(msg.Chat.ID, userKey(msg.From.ID), displayName(msg.From))
	b.sendMessage(msg.Chat.ID, reply, kb)
}

func (b *Bot) continueWizard(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if step, _ := b.wizards.step(chatID); step == stepPassword {
		b.deleteMessage(chatID, msg.MessageID)
	}

	reply, kb, input := b.wizards.advance(chatID, msg.Text)
	if input == nil {
		b.sendMessage(chatID, reply, kb)
		return
	}

	game, err := b.services.GameService.CreateGame(*input)
	if err != nil {
		b.sendMessage(chatID, delivery.ErrorMessage(err)+"\nStart again with /create_game.", kbNone)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Game %s created!\nCode: %s\n\nShare the code and password with your players. "+
		"They join with /join %s PASSWORD.", game.Name, game.Code, game.Code), kbNone)
}

func (b *Bot) cancelWizard(chatID int64) {
	if b.wizards.cancel(chatID) {
		b.sendMessage(chatID, "Cancelled.", kbNone)
		return
	}
	b.sendMessage(chatID, "Nothing to cancel.", kbNone)
}

func (b *Bot) handleJoin(msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID
	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.sendMessage(chatID, "Usage: /join CODE PASSWORD", kbNone)
		return
	}
	b.deleteMessage(chatID, msg.MessageID)

	game, err := b.services.GameService.JoinGame(strings.ToUpper(fields[0]), fields[1], userKey(msg.From.ID), displayName(msg.From))
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("You joined %s (%d/%d players).\n"+
		"Create a team with /create_team NAME or join one with /join_team NAME.",
		game.Name, game.CurrentPlayers, game.MaxPlayers), kbNone)
}

func (b *Bot) handleLeave(msg *tgbotapi.Message) {
	game, err := b.services.GameService.LeaveGame(userKey(msg.From.ID))
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("You left %s.", game.Name), kbNone)
}

func (b *Bot) handleMyGame(msg *tgbotapi.Message) {
	game, member, ok := b.currentGame(msg)
	if !ok {
		return
	}

	text := delivery.FormatGame(game) + fmt.Sprintf("\nYour role: %s", member.Role)
	if member.PlayerID == "" {
		text += "\nYou are not on a team yet."
	}
	b.sendMessage(msg.Chat.ID, text, kbNone)
}

func (b *Bot) handleTeams(msg *tgbotapi.Message) {
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}
	teams, err := b.services.RosterService.Teams(game.ID)
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, delivery.FormatTeams(teams), kbNone)
}

func (b *Bot) handleCreateTeam(msg *tgbotapi.Message, name string) {
	if name == "" {
		b.sendMessage(msg.Chat.ID, "Usage: /create_team NAME", kbNone)
		return
	}
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}

	team, err := b.services.RosterService.CreateTeam(game.ID, name, userKey(msg.From.ID))
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("Team %s created. You lead it.", team.Name), kbNone)
}

func (b *Bot) handleJoinTeam(msg *tgbotapi.Message, name string) {
	if name == "" {
		b.sendMessage(msg.Chat.ID, "Usage: /join_team NAME", kbNone)
		return
	}
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}

	team, err := b.services.RosterService.JoinTeam(game.ID, name, userKey(msg.From.ID))
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("You joined %s (%d players).", team.Name, len(team.Players)), kbNone)
}

func (b *Bot) handleKill(msg *tgbotapi.Message, target string) {
	if target == "" {
		b.sendMessage(msg.Chat.ID, "Usage: /kill NAME", kbNone)
		return
	}
	game, member, ok := b.currentGame(msg)
	if !ok {
		return
	}

	res, err := b.services.RosterService.ReportKill(game.ID, userKey(msg.From.ID), target)
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}

	text := delivery.FormatElimination(res)
	b.sendMessage(msg.Chat.ID, text, kbNone)
	b.notifyAdmins(fmt.Sprintf("Elimination reported in %s [%s] by %s:\n%s", game.Name, game.Code, member.DisplayName, text))
}

func (b *Bot) notifyAdmins(text string) {
	for adminID := range b.adminIDs {
		b.sendMessage(adminID, text, kbNone)
	}
}

func (b *Bot) handleStandings(msg *tgbotapi.Message) {
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}
	rows, err := b.services.StandingsService.Leaderboard(game.ID)
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, "Standings: "+game.Name+"\n\n"+delivery.FormatStandings(rows, 0), kbNone)
}

func (b *Bot) handleCounts(msg *tgbotapi.Message) {
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}
	counts, err := b.services.StandingsService.Counts(game.ID)
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, delivery.FormatCounts(counts), kbNone)
}

func (b *Bot) handleLocation(msg *tgbotapi.Message) {
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s\n%s", game.Location, application.LocationURL(game)), kbNone)
}

func (b *Bot) handleRules(msg *tgbotapi.Message) {
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}
	b.sendMessage(msg.Chat.ID, "Rules\n\n"+delivery.FormatRules(game.Rules), kbNone)
}

// handleSay stores the message in the hub and relays it to the other
// Telegram members of the game.
func (b *Bot) handleSay(msg *tgbotapi.Message, text string) {
	if text == "" {
		b.sendMessage(msg.Chat.ID, "Usage: /say TEXT", kbNone)
		return
	}
	game, member, ok := b.currentGame(msg)
	if !ok {
		return
	}

	posted, err := b.services.HubService.Post(game.ID, member.UserID, member.DisplayName, text)
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}

	members, err := b.services.GameService.Members(game.ID)
	if err != nil {
		b.logger.Error("list members of %s: %v", game.Code, err)
	}
	for _, m := range members {
		chatID, ok := chatIDFromKey(m.UserID)
		if !ok || m.UserID == member.UserID {
			continue
		}
		b.sendMessage(chatID, fmt.Sprintf("[%s] %s: %s", game.Name, posted.Author, posted.Text), kbNone)
	}
	b.sendMessage(msg.Chat.ID, "Posted.", kbNone)
}

func (b *Bot) handleHub(msg *tgbotapi.Message) {
	game, _, ok := b.currentGame(msg)
	if !ok {
		return
	}
	msgs, err := b.services.HubService.Recent(game.ID, 0)
	if err != nil {
		b.sendError(msg.Chat.ID, err)
		return
	}
	b.sendMessage(msg.Chat.ID, delivery.FormatMessages(msgs), kbNone)
}
