package telegram

import (
	"strconv"
	"strings"
	"sync"

	"assassin/internal/application"
)

type wizardStep int

const (
	stepName wizardStep = iota
	stepLocation
	stepPassword
	stepMaxPlayers
)

type gameDraft struct {
	step  wizardStep
	input application.CreateGameInput
}

// wizards keeps one /create_game draft per chat.
type wizards struct {
	mu     sync.Mutex
	drafts map[int64]*gameDraft
}

func newWizards() *wizards {
	return &wizards{drafts: make(map[int64]*gameDraft)}
}

func (w *wizards) start(chatID int64, hostID, hostName string) (string, string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.drafts[chatID] = &gameDraft{
		step: stepName,
		input: application.CreateGameInput{
			HostID:    hostID,
			HostName:  hostName,
			HostPlays: true,
		},
	}
	return "Creating a new game.\n\nWhat is the game called?", kbCancel
}

func (w *wizards) cancel(chatID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.drafts[chatID]
	delete(w.drafts, chatID)
	return ok
}

// advance feeds one answer into the draft. It returns the finished input once
// the last question is answered.
func (w *wizards) advance(chatID int64, text string) (string, string, *application.CreateGameInput) {
	w.mu.Lock()
	defer w.mu.Unlock()

	draft, ok := w.drafts[chatID]
	if !ok {
		return "Use /start to see the commands.", kbNone, nil
	}
	text = strings.TrimSpace(text)

	switch draft.step {
	case stepName:
		if text == "" {
			return "The name can't be empty. What is the game called?", kbCancel, nil
		}
		draft.input.Name = text
		draft.step = stepLocation
		return "Where is it played? Send a city or an area.", kbCancel, nil

	case stepLocation:
		if text == "" {
			return "The location can't be empty. Where is it played?", kbCancel, nil
		}
		draft.input.Location = text
		draft.step = stepPassword
		return "Choose a password players will use to join (6 to 20 characters).", kbCancel, nil

	case stepPassword:
		draft.input.Password = text
		draft.step = stepMaxPlayers
		return "How many players at most? Press Skip for the default.", kbSkip, nil

	case stepMaxPlayers:
		if text != btnSkip {
			n, err := strconv.Atoi(text)
			if err != nil || n <= 0 {
				return "Send a positive number or press Skip.", kbSkip, nil
			}
			draft.input.MaxPlayers = n
		}
		delete(w.drafts, chatID)
		input := draft.input
		return "", kbNone, &input
	}

	delete(w.drafts, chatID)
	return "Something went wrong, start again with /create_game.", kbNone, nil
}

// step reports the current question, used to hide password answers.
func (w *wizards) step(chatID int64) (wizardStep, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	draft, ok := w.drafts[chatID]
	if !ok {
		return 0, false
	}
	return draft.step, true
}
