package telegram

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"assassin/internal/delivery"
)

const (
	kbNone   = "empty"
	kbCancel = "cancel"
	kbSkip   = "skip"

	btnCancel = "Cancel"
	btnSkip   = "Skip"

	maxMessageLength = 4096
	userIDPrefix     = "tg:"
)

func (b *Bot) isAdmin(id int64) bool {
	_, ok := b.adminIDs[id]
	return ok
}

func (b *Bot) sendMessage(chatID int64, text string, kbType string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, delivery.Truncate(text, maxMessageLength))

	switch kbType {
	case kbSkip:
		msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnSkip),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnCancel),
			),
		)
	case kbCancel:
		msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnCancel),
			),
		)
	default:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send to %d: %v", chatID, err)
	}
}

func (b *Bot) sendError(chatID int64, err error) {
	b.logger.Debug("chat %d: %v", chatID, err)
	b.sendMessage(chatID, delivery.ErrorMessage(err), kbNone)
}

// deleteMessage removes messages that carry a game password.
func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("delete message %d in %d: %v", messageID, chatID, err)
	}
}

func userKey(id int64) string {
	return userIDPrefix + strconv.FormatInt(id, 10)
}

// chatIDFromKey returns the Telegram chat for a member identity, false for
// members that came from another platform.
func chatIDFromKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, userIDPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return userKey(u.ID)
}
