package standings

import (
	"fmt"
	"strings"
)

// PlayerStatus is the lifecycle state of a single player.
type PlayerStatus uint8

const (
	PlayerActive PlayerStatus = iota
	PlayerEliminated
	PlayerSpectating
)

var playerStatusNames = map[PlayerStatus]string{
	PlayerActive:     "active",
	PlayerEliminated: "eliminated",
	PlayerSpectating: "spectating",
}

func (s PlayerStatus) String() string {
	if name, ok := playerStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PlayerStatus(%d)", uint8(s))
}

func (s PlayerStatus) Valid() bool {
	_, ok := playerStatusNames[s]
	return ok
}

func (s PlayerStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown player status %d", ErrInvalidInput, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *PlayerStatus) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayerStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParsePlayerStatus accepts the lowercase names used in the roster encoding.
func ParsePlayerStatus(s string) (PlayerStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for status, name := range playerStatusNames {
		if name == key {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown player status %q", ErrInvalidInput, s)
}

// TeamStatus is an admin-controlled flag. It is not derived from the players.
type TeamStatus uint8

const (
	TeamActive TeamStatus = iota
	TeamEliminated
)

var teamStatusNames = map[TeamStatus]string{
	TeamActive:     "active",
	TeamEliminated: "eliminated",
}

func (s TeamStatus) String() string {
	if name, ok := teamStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TeamStatus(%d)", uint8(s))
}

func (s TeamStatus) Valid() bool {
	_, ok := teamStatusNames[s]
	return ok
}

func (s TeamStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown team status %d", ErrInvalidInput, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *TeamStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTeamStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseTeamStatus(s string) (TeamStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for status, name := range teamStatusNames {
		if name == key {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown team status %q", ErrInvalidInput, s)
}
