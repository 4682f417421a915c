package application

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrWrongPassword   = errors.New("wrong game password")
	ErrGameFull        = errors.New("game is full")
	ErrGameFinished    = errors.New("game is finished")
	ErrGameState       = errors.New("game is not in the required state")
	ErrAlreadyInGame   = errors.New("already in a game")
	ErrNotInGame       = errors.New("not in this game")
	ErrAlreadyOnTeam   = errors.New("already on a team")
	ErrNotOnTeam       = errors.New("not on a team")
	ErrAmbiguousPlayer = errors.New("several players match that name")
	ErrSheetsDisabled  = errors.New("google sheets service is not configured")
)
