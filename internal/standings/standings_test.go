package standings

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestComputeStandingsOrdersByPoints(t *testing.T) {
	e := New()
	mustTeam(t, e, "Red")
	mustTeam(t, e, "Blue")
	mustTeam(t, e, "Green")
	r1 := mustPlayer(t, e, "Red", "R1")
	b1 := mustPlayer(t, e, "Blue", "B1")
	g1 := mustPlayer(t, e, "Green", "G1")
	g2 := mustPlayer(t, e, "Green", "G2")

	assert.Equal(t, nil, e.EliminatePlayer(r1, &g1))
	assert.Equal(t, nil, e.EliminatePlayer(b1, &g2))

	rows := e.ComputeStandings()
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, "Green", rows[0].Team.Name)
	assert.Equal(t, 2, rows[0].Points)
	assert.Equal(t, 1, rows[0].Rank)

	// Red and Blue tie at zero and keep creation order.
	assert.Equal(t, "Red", rows[1].Team.Name)
	assert.Equal(t, "Blue", rows[2].Team.Name)
	assert.Equal(t, 3, rows[2].Rank)

	for i := 1; i < len(rows); i++ {
		assert.T(t, rows[i-1].Points >= rows[i].Points, "standings out of order at", i)
	}
}

func TestComputeStandingsIsPure(t *testing.T) {
	e, alice, bob := redBlue(t)
	assert.Equal(t, nil, e.EliminatePlayer(alice, &bob))

	before := e.Snapshot()
	first := e.ComputeStandings()
	second := e.ComputeStandings()

	assert.Equal(t, first, second)
	assert.Equal(t, before, e.Snapshot())
}

func TestComputeStandingsEmpty(t *testing.T) {
	assert.Equal(t, 0, len(New().ComputeStandings()))
	assert.Equal(t, Counts{}, New().ComputeAggregateCounts())
}

func TestRedBlueScenario(t *testing.T) {
	e, alice, bob := redBlue(t)

	assert.Equal(t, nil, e.EliminatePlayer(alice, &bob))

	b, _ := e.Player(bob)
	a, _ := e.Player(alice)
	assert.Equal(t, 1, b.Kills)
	assert.Equal(t, PlayerEliminated, a.Status)

	assert.Equal(t, Counts{
		TotalPlayers:  2,
		PlayersOut:    1,
		PlayersInGame: 1,
		TotalTeams:    2,
		TeamsInGame:   2,
	}, e.ComputeAggregateCounts())

	rows := e.ComputeStandings()
	assert.Equal(t, "Blue", rows[0].Team.Name)
	assert.Equal(t, 1, rows[0].Points)
}

func TestTeamPointsAndActivePlayers(t *testing.T) {
	team := Team{Players: []Player{
		{Kills: 2, Status: PlayerActive},
		{Kills: 3, Status: PlayerEliminated},
		{Kills: 0, Status: PlayerSpectating},
	}}
	assert.Equal(t, 5, team.Points())
	assert.Equal(t, 1, team.ActivePlayers())
}

func TestCountsPanicsOnCorruptedStatus(t *testing.T) {
	e, _, _ := redBlue(t)
	e.teams[0].Players[0].Status = PlayerStatus(99)

	defer func() {
		assert.NotEqual(t, nil, recover())
	}()
	e.ComputeAggregateCounts()
}
