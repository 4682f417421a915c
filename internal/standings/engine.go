// Package standings keeps the roster of a single game instance and derives
// rankings and aggregate counts from it. It does no I/O and holds no locks.
package standings

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Player struct {
	ID     string
	Name   string
	Email  string
	Status PlayerStatus
	Kills  int
}

type Team struct {
	ID      string
	Name    string
	Status  TeamStatus
	Players []Player
}

// Points is the sum of member kills. It is never stored.
func (t Team) Points() int {
	points := 0
	for _, p := range t.Players {
		points += p.Kills
	}
	return points
}

func (t Team) ActivePlayers() int {
	active := 0
	for _, p := range t.Players {
		if p.Status == PlayerActive {
			active++
		}
	}
	return active
}

// PlayerRef addresses a player by team index and position within the team.
type PlayerRef struct {
	Team   int
	Player int
}

// Engine owns the roster of one game. Calls must be serialized by the caller.
type Engine struct {
	teams []Team
	newID func() string
}

func New() *Engine {
	return &Engine{newID: uuid.NewString}
}

func (e *Engine) CreateTeam(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: team name is empty", ErrInvalidInput)
	}
	if _, err := e.TeamByName(name); err == nil {
		return "", fmt.Errorf("%w: %q", ErrDuplicateTeam, name)
	}

	id := e.newID()
	e.teams = append(e.teams, Team{
		ID:      id,
		Name:    name,
		Status:  TeamActive,
		Players: []Player{},
	})
	return id, nil
}

// AddPlayer appends an active player with no kills to the named team.
func (e *Engine) AddPlayer(teamName, playerName string) (string, error) {
	if strings.TrimSpace(teamName) == "" {
		return "", fmt.Errorf("%w: team name is empty", ErrInvalidInput)
	}
	idx, err := e.TeamByName(teamName)
	if err != nil {
		return "", err
	}
	return e.addPlayer(idx, playerName, "")
}

// Enroll is AddPlayer with the team addressed by ID and an optional email.
func (e *Engine) Enroll(teamID, name, email string) (string, error) {
	idx, err := e.TeamIndex(teamID)
	if err != nil {
		return "", err
	}
	return e.addPlayer(idx, name, email)
}

func (e *Engine) addPlayer(teamIdx int, name, email string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: player name is empty", ErrInvalidInput)
	}

	id := e.newID()
	team := &e.teams[teamIdx]
	team.Players = append(team.Players, Player{
		ID:     id,
		Name:   name,
		Email:  strings.TrimSpace(email),
		Status: PlayerActive,
	})
	return id, nil
}

// EliminatePlayer marks target as eliminated and credits the eliminator, if
// one is given and still active. Nothing changes unless every check passes.
func (e *Engine) EliminatePlayer(target PlayerRef, eliminator *PlayerRef) error {
	victim, err := e.player(target)
	if err != nil {
		return err
	}

	var killer *Player
	if eliminator != nil {
		killer, err = e.player(*eliminator)
		if err != nil {
			return fmt.Errorf("eliminator: %w", err)
		}
		if *eliminator == target {
			return ErrSelfElimination
		}
	}

	switch victim.Status {
	case PlayerEliminated:
		return fmt.Errorf("%w: %s", ErrAlreadyEliminated, victim.Name)
	case PlayerSpectating:
		return fmt.Errorf("%w: %s is spectating", ErrNotActive, victim.Name)
	}

	victim.Status = PlayerEliminated
	if killer != nil && killer.Status == PlayerActive {
		killer.Kills++
	}
	return nil
}

// RevivePlayer returns an eliminated player to play. Kills credited for the
// elimination stay where they are.
func (e *Engine) RevivePlayer(target PlayerRef) error {
	p, err := e.player(target)
	if err != nil {
		return err
	}
	if p.Status != PlayerEliminated {
		return fmt.Errorf("%w: %s is %s", ErrNotEliminated, p.Name, p.Status)
	}
	p.Status = PlayerActive
	return nil
}

func (e *Engine) Spectate(target PlayerRef) error {
	p, err := e.player(target)
	if err != nil {
		return err
	}
	if p.Status != PlayerActive {
		return fmt.Errorf("%w: %s is %s", ErrNotActive, p.Name, p.Status)
	}
	p.Status = PlayerSpectating
	return nil
}

func (e *Engine) RemovePlayer(target PlayerRef) error {
	if _, err := e.player(target); err != nil {
		return err
	}
	team := &e.teams[target.Team]
	team.Players = append(team.Players[:target.Player], team.Players[target.Player+1:]...)
	return nil
}

func (e *Engine) SetTeamStatus(teamIdx int, status TeamStatus) error {
	team, err := e.team(teamIdx)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown team status %d", ErrInvalidInput, uint8(status))
	}
	team.Status = status
	return nil
}

// DeleteTeam removes the team and every player in it.
func (e *Engine) DeleteTeam(teamIdx int) error {
	if _, err := e.team(teamIdx); err != nil {
		return err
	}
	e.teams = append(e.teams[:teamIdx], e.teams[teamIdx+1:]...)
	return nil
}

// Teams returns a deep copy of the roster in insertion order.
func (e *Engine) Teams() []Team {
	teams := make([]Team, len(e.teams))
	for i, t := range e.teams {
		teams[i] = copyTeam(t)
	}
	return teams
}

func (e *Engine) Team(teamIdx int) (Team, error) {
	t, err := e.team(teamIdx)
	if err != nil {
		return Team{}, err
	}
	return copyTeam(*t), nil
}

func (e *Engine) Player(ref PlayerRef) (Player, error) {
	p, err := e.player(ref)
	if err != nil {
		return Player{}, err
	}
	return *p, nil
}

func (e *Engine) TeamIndex(teamID string) (int, error) {
	for i, t := range e.teams {
		if t.ID == teamID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %s", ErrTeamNotFound, teamID)
}

// TeamByName matches names case-insensitively after trimming.
func (e *Engine) TeamByName(name string) (int, error) {
	name = strings.TrimSpace(name)
	for i, t := range e.teams {
		if strings.EqualFold(t.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrTeamNotFound, name)
}

func (e *Engine) Locate(playerID string) (PlayerRef, error) {
	for ti, t := range e.teams {
		for pi, p := range t.Players {
			if p.ID == playerID {
				return PlayerRef{Team: ti, Player: pi}, nil
			}
		}
	}
	return PlayerRef{}, fmt.Errorf("%w: id %s", ErrPlayerNotFound, playerID)
}

// FindPlayer returns the first player of the named team whose name matches.
func (e *Engine) FindPlayer(teamName, playerName string) (PlayerRef, error) {
	ti, err := e.TeamByName(teamName)
	if err != nil {
		return PlayerRef{}, err
	}
	playerName = strings.TrimSpace(playerName)
	for pi, p := range e.teams[ti].Players {
		if strings.EqualFold(p.Name, playerName) {
			return PlayerRef{Team: ti, Player: pi}, nil
		}
	}
	return PlayerRef{}, fmt.Errorf("%w: %q in team %q", ErrPlayerNotFound, playerName, e.teams[ti].Name)
}

// PlayersNamed lists every player across all teams with the given name.
func (e *Engine) PlayersNamed(name string) []PlayerRef {
	name = strings.TrimSpace(name)
	var refs []PlayerRef
	for ti, t := range e.teams {
		for pi, p := range t.Players {
			if strings.EqualFold(p.Name, name) {
				refs = append(refs, PlayerRef{Team: ti, Player: pi})
			}
		}
	}
	return refs
}

func (e *Engine) team(idx int) (*Team, error) {
	if idx < 0 || idx >= len(e.teams) {
		return nil, fmt.Errorf("%w: index %d", ErrTeamNotFound, idx)
	}
	return &e.teams[idx], nil
}

func (e *Engine) player(ref PlayerRef) (*Player, error) {
	if ref.Team < 0 || ref.Team >= len(e.teams) {
		return nil, fmt.Errorf("%w: team index %d", ErrPlayerNotFound, ref.Team)
	}
	players := e.teams[ref.Team].Players
	if ref.Player < 0 || ref.Player >= len(players) {
		return nil, fmt.Errorf("%w: player index %d", ErrPlayerNotFound, ref.Player)
	}
	return &players[ref.Player], nil
}

func copyTeam(t Team) Team {
	players := make([]Player, len(t.Players))
	copy(players, t.Players)
	t.Players = players
	return t
}
