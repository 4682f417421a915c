package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"assassin/internal/application"
)

// sender is the part of tgbotapi.BotAPI the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	bot      *tgbotapi.BotAPI
	api      sender
	services *application.Service
	logger   application.Logger
	adminIDs map[int64]struct{}
	wizards  *wizards
}

func NewBot(token string, adminIDs []int64, services *application.Service, logger application.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("telegram bot authorized on account %s", bot.Self.UserName)

	b := newBot(bot, adminIDs, services, logger)
	b.bot = bot
	return b, nil
}

func newBot(api sender, adminIDs []int64, services *application.Service, logger application.Logger) *Bot {
	admins := make(map[int64]struct{})
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Bot{
		api:      api,
		services: services,
		logger:   logger,
		adminIDs: admins,
		wizards:  newWizards(),
	}
}

func (b *Bot) Init() error {
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.bot.StopReceivingUpdates()
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		if msg.Command() == "cancel" {
			b.cancelWizard(chatID)
			return
		}
		b.wizards.cancel(chatID)
		b.handleCommand(msg)
		return
	}

	if msg.Text == btnCancel {
		b.cancelWizard(chatID)
		return
	}
	if _, ok := b.wizards.step(chatID); ok {
		b.continueWizard(msg)
		return
	}

	b.sendMessage(chatID, "Use /start to see the commands.", kbNone)
}
