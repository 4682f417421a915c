package application

import (
	"errors"
	"strings"
	"testing"

	"github.com/bmizerany/assert"
)

func TestHubPostAndRecent(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)

	msg, err := f.svc.HubService.Post(game.ID, "tg:1", "Host", "  see you at noon  ")
	assert.Equal(t, nil, err)
	assert.Equal(t, "see you at noon", msg.Text)
	assert.NotEqual(t, int64(0), msg.ID)

	_, err = f.svc.HubService.Post(game.ID, "tg:1", "", "second")
	assert.Equal(t, nil, err)

	msgs, err := f.svc.HubService.Recent(game.ID, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(msgs))
	assert.Equal(t, "tg:1", msgs[1].Author)
}

func TestHubRejectsBadMessages(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)

	_, err := f.svc.HubService.Post(game.ID, "tg:1", "Host", "   ")
	assert.T(t, errors.Is(err, ErrInvalidInput), err)

	_, err = f.svc.HubService.Post(game.ID, "tg:1", "Host", strings.Repeat("x", maxMessageRunes+1))
	assert.T(t, errors.Is(err, ErrInvalidInput), err)

	_, _ = f.svc.GameService.FinishGame(game.Code)
	_, err = f.svc.HubService.Post(game.ID, "tg:1", "Host", "gg")
	assert.Equal(t, ErrGameFinished, err)
}
