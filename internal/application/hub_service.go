package application

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"assassin/internal/models"
	"assassin/internal/repository"
)

type HubServiceImpl struct {
	games  repository.Game
	repo   repository.Hub
	logger Logger
}

func NewHubServiceImpl(games repository.Game, repo repository.Hub, logger Logger) *HubServiceImpl {
	return &HubServiceImpl{
		games:  games,
		repo:   repo,
		logger: logger,
	}
}

func (s *HubServiceImpl) Post(gameID, userID, author, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > maxMessageRunes {
		return nil, fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, maxMessageRunes)
	}

	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	if err := ensureOpen(game); err != nil {
		return nil, err
	}

	msg := &models.Message{
		GameID: gameID,
		UserID: userID,
		Author: displayNameOr(author, userID),
		Text:   text,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *HubServiceImpl) Recent(gameID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}
	return s.repo.ListMessages(gameID, limit)
}
