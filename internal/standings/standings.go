package standings

import (
	"fmt"
	"sort"
)

type Standing struct {
	Rank   int
	Team   Team
	Points int
}

// Counts is recomputed from the roster on every call.
type Counts struct {
	TotalPlayers  int
	PlayersOut    int
	PlayersInGame int
	Spectators    int
	TotalTeams    int
	TeamsOut      int
	TeamsInGame   int
}

// ComputeStandings orders teams by points, highest first. Teams with equal
// points keep the order they were created in.
func (e *Engine) ComputeStandings() []Standing {
	result := make([]Standing, len(e.teams))
	for i, t := range e.teams {
		result[i] = Standing{Team: copyTeam(t), Points: t.Points()}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Points > result[j].Points
	})

	for i := range result {
		result[i].Rank = i + 1
	}
	return result
}

// ComputeAggregateCounts counts spectators only in TotalPlayers and Spectators.
func (e *Engine) ComputeAggregateCounts() Counts {
	var c Counts
	for _, t := range e.teams {
		c.TotalTeams++
		switch t.Status {
		case TeamActive:
			c.TeamsInGame++
		case TeamEliminated:
			c.TeamsOut++
		default:
			panic(fmt.Sprintf("standings: team %s has corrupted status %d", t.ID, uint8(t.Status)))
		}

		for _, p := range t.Players {
			c.TotalPlayers++
			switch p.Status {
			case PlayerActive:
				c.PlayersInGame++
			case PlayerEliminated:
				c.PlayersOut++
			case PlayerSpectating:
				c.Spectators++
			default:
				panic(fmt.Sprintf("standings: player %s has corrupted status %d", p.ID, uint8(p.Status)))
			}
		}
	}
	return c
}
