package application

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"assassin/internal/repository"
	"assassin/internal/standings"

	"github.com/bmizerany/assert"
)

type flakyRoster struct {
	repository.Roster
	fail bool
}

func (r *flakyRoster) SaveRoster(gameID string, roster standings.Roster) error {
	if r.fail {
		return errors.New("disk full")
	}
	return r.Roster.SaveRoster(gameID, roster)
}

func TestSessionsDropEngineWhenSaveFails(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)

	roster := &flakyRoster{Roster: f.repos.Roster}
	sessions := NewSessions(roster)

	err := sessions.Mutate(game.ID, func(e *standings.Engine) error {
		_, err := e.CreateTeam("Red")
		return err
	})
	assert.Equal(t, nil, err)

	roster.fail = true
	err = sessions.Mutate(game.ID, func(e *standings.Engine) error {
		_, err := e.CreateTeam("Blue")
		return err
	})
	assert.NotEqual(t, nil, err)

	roster.fail = false
	var teams []standings.Team
	_ = sessions.View(game.ID, func(e *standings.Engine) error {
		teams = e.Teams()
		return nil
	})
	assert.Equal(t, 1, len(teams))
	assert.Equal(t, "Red", teams[0].Name)
}

func TestSessionsSerializeMutations(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	sessions := NewSessions(f.repos.Roster)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = sessions.Mutate(game.ID, func(e *standings.Engine) error {
				_, err := e.CreateTeam(fmt.Sprintf("Team %d", i))
				return err
			})
		}(i)
	}
	wg.Wait()

	var counts standings.Counts
	_ = sessions.View(game.ID, func(e *standings.Engine) error {
		counts = e.ComputeAggregateCounts()
		return nil
	})
	assert.Equal(t, 20, counts.TotalTeams)

	sessions.Forget(game.ID)
	assert.Equal(t, 0, sessions.Size())
}
