package repository

import (
	"strings"
	"testing"

	"assassin/internal/models"
	"assassin/internal/standings"

	"github.com/bmizerany/assert"
)

func newGame(t *testing.T, repo *Repository, id string) *models.Game {
	t.Helper()
	g := &models.Game{
		ID:         id,
		Name:       "Game " + id,
		Location:   "Central Park",
		MaxPlayers: 10,
		Status:     models.GameWaiting,
		Rules:      []string{"be nice"},
	}
	if err := repo.Game.Create(g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}

func TestGenerateCode(t *testing.T) {
	code := generateCode(joinCodeLength)
	assert.Equal(t, joinCodeLength, len(code))
	for _, c := range code {
		assert.T(t, strings.ContainsRune(joinCodeChars, c), "unexpected rune", string(c))
	}
}

func TestMemoryGameLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	g := newGame(t, repo, "g1")
	assert.Equal(t, joinCodeLength, len(g.Code))

	byCode, err := repo.Game.GetByCode(strings.ToLower(g.Code))
	assert.Equal(t, nil, err)
	assert.Equal(t, "g1", byCode.ID)

	// Returned games are copies.
	byCode.Rules[0] = "changed"
	again, _ := repo.Game.GetByID("g1")
	assert.Equal(t, "be nice", again.Rules[0])

	assert.Equal(t, nil, repo.Game.SetStatus("g1", models.GameActive, models.GameWaiting))
	assert.Equal(t, ErrStatusChanged, repo.Game.SetStatus("g1", models.GameActive, models.GameWaiting))
	assert.Equal(t, ErrGameNotFound, repo.Game.SetStatus("nope", models.GameActive))

	active, _ := repo.Game.ListByStatus(models.GameActive)
	assert.Equal(t, 1, len(active))

	assert.Equal(t, nil, repo.Game.Delete("g1"))
	_, err = repo.Game.GetByID("g1")
	assert.Equal(t, ErrGameNotFound, err)
	assert.Equal(t, ErrGameNotFound, repo.Game.Delete("g1"))
}

func TestMemorySeats(t *testing.T) {
	repo := NewMemoryRepository()
	g := &models.Game{ID: "g1", Name: "Small", MaxPlayers: 2, Status: models.GameWaiting}
	assert.Equal(t, nil, repo.Game.Create(g))

	n, err := repo.Game.TakeSeat("g1")
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, n)
	n, _ = repo.Game.TakeSeat("g1")
	assert.Equal(t, 2, n)
	_, err = repo.Game.TakeSeat("g1")
	assert.Equal(t, ErrNoSeats, err)

	// Other columns are written on their own and leave the count alone.
	assert.Equal(t, nil, repo.Game.SetSheetID("g1", "sheet-1"))
	stored, _ := repo.Game.GetByID("g1")
	assert.Equal(t, 2, stored.CurrentPlayers)
	assert.Equal(t, "sheet-1", stored.SheetID)

	n, _ = repo.Game.FreeSeat("g1")
	assert.Equal(t, 1, n)
	_, _ = repo.Game.FreeSeat("g1")
	n, _ = repo.Game.FreeSeat("g1")
	assert.Equal(t, 0, n)

	_, err = repo.Game.TakeSeat("nope")
	assert.Equal(t, ErrGameNotFound, err)
}

func TestMemoryListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	newGame(t, repo, "a")
	newGame(t, repo, "b")

	games, err := repo.Game.List()
	assert.Equal(t, nil, err)
	assert.Equal(t, "b", games[0].ID)
	assert.Equal(t, "a", games[1].ID)
}

func TestMemoryMembers(t *testing.T) {
	repo := NewMemoryRepository()
	newGame(t, repo, "g1")

	m := &models.Member{GameID: "g1", UserID: "tg:1", DisplayName: "Alice", Role: models.RoleHost}
	assert.Equal(t, nil, repo.Member.AddMember(m))
	assert.NotEqual(t, nil, repo.Member.AddMember(&models.Member{GameID: "g1", UserID: "tg:1"}))

	missing, err := repo.Member.GetMemberByUser("tg:2")
	assert.Equal(t, nil, err)
	assert.T(t, missing == nil)

	m.PlayerID = "p1"
	assert.Equal(t, nil, repo.Member.UpdateMember(m))

	byPlayer, _ := repo.Member.GetMemberByPlayer("g1", "p1")
	assert.Equal(t, "tg:1", byPlayer.UserID)

	assert.Equal(t, nil, repo.Member.RemoveMember("g1", "tg:1"))
	members, _ := repo.Member.ListMembers("g1")
	assert.Equal(t, 0, len(members))
}

func TestMemoryRosterRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	newGame(t, repo, "g1")

	none, err := repo.Roster.LoadRoster("g1")
	assert.Equal(t, nil, err)
	assert.T(t, none == nil)

	e := standings.New()
	_, _ = e.CreateTeam("Red")
	_, _ = e.AddPlayer("Red", "Alice")
	assert.Equal(t, nil, repo.Roster.SaveRoster("g1", e.Snapshot()))

	loaded, err := repo.Roster.LoadRoster("g1")
	assert.Equal(t, nil, err)
	assert.Equal(t, e.Snapshot(), *loaded)

	assert.Equal(t, ErrGameNotFound, repo.Roster.SaveRoster("nope", e.Snapshot()))
}

func TestMemoryHubKeepsLatest(t *testing.T) {
	repo := NewMemoryRepository()
	newGame(t, repo, "g1")
	newGame(t, repo, "g2")

	for _, text := range []string{"one", "two", "three"} {
		assert.Equal(t, nil, repo.Hub.CreateMessage(&models.Message{GameID: "g1", Text: text}))
	}
	assert.Equal(t, nil, repo.Hub.CreateMessage(&models.Message{GameID: "g2", Text: "other"}))

	msgs, err := repo.Hub.ListMessages("g1", 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(msgs))
	assert.Equal(t, "two", msgs[0].Text)
	assert.Equal(t, "three", msgs[1].Text)
}
