package standings

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrTeamNotFound      = errors.New("team not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrDuplicateTeam     = errors.New("team already exists")
	ErrAlreadyEliminated = errors.New("player already eliminated")
	ErrNotEliminated     = errors.New("player is not eliminated")
	ErrNotActive         = errors.New("player is not active")
	ErrSelfElimination   = errors.New("player cannot eliminate themselves")
)
