package standings

import (
	"fmt"
	"strings"
)

// Roster is the structural encoding of an engine, suitable for JSON storage.
type Roster struct {
	Teams []RosterTeam `json:"teams"`
}

type RosterTeam struct {
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name"`
	Status  TeamStatus     `json:"status"`
	Players []RosterPlayer `json:"players"`
}

type RosterPlayer struct {
	ID     string       `json:"id,omitempty"`
	Name   string       `json:"name"`
	Email  string       `json:"email,omitempty"`
	Status PlayerStatus `json:"status"`
	Kills  int          `json:"kills"`
}

func (e *Engine) Snapshot() Roster {
	r := Roster{Teams: make([]RosterTeam, 0, len(e.teams))}
	for _, t := range e.teams {
		rt := RosterTeam{
			ID:      t.ID,
			Name:    t.Name,
			Status:  t.Status,
			Players: make([]RosterPlayer, 0, len(t.Players)),
		}
		for _, p := range t.Players {
			rt.Players = append(rt.Players, RosterPlayer{
				ID:     p.ID,
				Name:   p.Name,
				Email:  p.Email,
				Status: p.Status,
				Kills:  p.Kills,
			})
		}
		r.Teams = append(r.Teams, rt)
	}
	return r
}

// FromRoster rebuilds an engine from its encoding. Missing IDs are generated.
func FromRoster(r Roster) (*Engine, error) {
	e := New()
	ids := make(map[string]struct{})
	names := make(map[string]struct{})

	claim := func(id string) (string, error) {
		if id == "" {
			id = e.newID()
		}
		if _, dup := ids[id]; dup {
			return "", fmt.Errorf("%w: duplicate id %s", ErrInvalidInput, id)
		}
		ids[id] = struct{}{}
		return id, nil
	}

	for _, rt := range r.Teams {
		name := strings.TrimSpace(rt.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: team name is empty", ErrInvalidInput)
		}
		key := strings.ToLower(name)
		if _, dup := names[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTeam, name)
		}
		names[key] = struct{}{}
		if !rt.Status.Valid() {
			return nil, fmt.Errorf("%w: team %q has unknown status", ErrInvalidInput, name)
		}

		teamID, err := claim(rt.ID)
		if err != nil {
			return nil, err
		}
		team := Team{ID: teamID, Name: name, Status: rt.Status, Players: make([]Player, 0, len(rt.Players))}

		for _, rp := range rt.Players {
			pname := strings.TrimSpace(rp.Name)
			if pname == "" {
				return nil, fmt.Errorf("%w: player name is empty in team %q", ErrInvalidInput, name)
			}
			if !rp.Status.Valid() {
				return nil, fmt.Errorf("%w: player %q has unknown status", ErrInvalidInput, pname)
			}
			if rp.Kills < 0 {
				return nil, fmt.Errorf("%w: player %q has negative kills", ErrInvalidInput, pname)
			}
			playerID, err := claim(rp.ID)
			if err != nil {
				return nil, err
			}
			team.Players = append(team.Players, Player{
				ID:     playerID,
				Name:   pname,
				Email:  rp.Email,
				Status: rp.Status,
				Kills:  rp.Kills,
			})
		}
		e.teams = append(e.teams, team)
	}
	return e, nil
}
