package application

import (
	"errors"
	"testing"

	"assassin/internal/models"
	"assassin/internal/repository"

	"github.com/bmizerany/assert"
)

func TestCreateGame(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 0)

	assert.Equal(t, models.GameWaiting, game.Status)
	assert.Equal(t, defaultMaxPlayers, game.MaxPlayers)
	assert.Equal(t, 1, game.CurrentPlayers)
	assert.Equal(t, len(defaultRules), len(game.Rules))
	assert.NotEqual(t, "secret1", game.PasswordHash)

	_, member, err := f.svc.GameService.CurrentGame("tg:1")
	assert.Equal(t, nil, err)
	assert.Equal(t, models.RoleHost, member.Role)
	assert.Equal(t, "Host", member.DisplayName)
}

func TestCreateGameValidation(t *testing.T) {
	f := newFixture(t)
	base := CreateGameInput{Name: "G", Location: "L", Password: "secret1", MaxPlayers: 4, HostID: "discord:1"}

	cases := map[string]func(in *CreateGameInput){
		"blank name":     func(in *CreateGameInput) { in.Name = "  " },
		"blank location": func(in *CreateGameInput) { in.Location = "" },
		"short password": func(in *CreateGameInput) { in.Password = "12345" },
		"long password":  func(in *CreateGameInput) { in.Password = "123456789012345678901" },
		"one player":     func(in *CreateGameInput) { in.MaxPlayers = 1 },
		"no host":        func(in *CreateGameInput) { in.HostID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := f.svc.GameService.CreateGame(in)
			assert.T(t, errors.Is(err, ErrInvalidInput), err)
		})
	}
}

func TestCreateGameOrganizerDoesNotPlay(t *testing.T) {
	f := newFixture(t)
	game, err := f.svc.GameService.CreateGame(CreateGameInput{
		Name: "G", Location: "L", Password: "secret1", MaxPlayers: 4, HostID: "discord:1",
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, game.CurrentPlayers)

	_, _, err = f.svc.GameService.CurrentGame("discord:1")
	assert.Equal(t, ErrNotInGame, err)
}

func TestJoinGame(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 3)

	_, err := f.svc.GameService.JoinGame(game.Code, "wrong-pass", "tg:2", "Alice")
	assert.Equal(t, ErrWrongPassword, err)

	joined, err := f.svc.GameService.JoinGame(game.Code, "secret1", "tg:2", "Alice")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, joined.CurrentPlayers)

	_, err = f.svc.GameService.JoinGame(game.Code, "secret1", "tg:2", "Alice")
	assert.Equal(t, ErrAlreadyInGame, err)

	f.join(t, game, "tg:3", "Bob")
	_, err = f.svc.GameService.JoinGame(game.Code, "secret1", "tg:4", "Carol")
	assert.Equal(t, ErrGameFull, err)

	_, err = f.svc.GameService.JoinGame("ZZZZZZ", "secret1", "tg:4", "Carol")
	assert.Equal(t, repository.ErrGameNotFound, err)
}

func TestJoinFinishedGame(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 5)
	_, err := f.svc.GameService.FinishGame(game.Code)
	assert.Equal(t, nil, err)

	_, err = f.svc.GameService.JoinGame(game.Code, "secret1", "tg:2", "Alice")
	assert.Equal(t, ErrGameFinished, err)
}

func TestLeaveGameRemovesRosterPlayer(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 5)
	f.join(t, game, "tg:2", "Alice")

	_, err := f.svc.RosterService.CreateTeam(game.ID, "Red", "tg:2")
	assert.Equal(t, nil, err)

	left, err := f.svc.GameService.LeaveGame("tg:2")
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, left.CurrentPlayers)

	teams, _ := f.svc.RosterService.Teams(game.ID)
	assert.Equal(t, 0, len(teams[0].Players))

	_, err = f.svc.GameService.LeaveGame("tg:2")
	assert.Equal(t, ErrNotInGame, err)
}

func TestEliminatedPlayerCannotLeaveAndRejoin(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	f.join(t, game, "tg:2", "Alice")
	f.join(t, game, "tg:3", "Bob")
	_, _ = f.svc.RosterService.CreateTeam(game.ID, "Red", "tg:2")
	_, _ = f.svc.RosterService.CreateTeam(game.ID, "Blue", "tg:3")
	_, err := f.svc.GameService.StartGame(game.Code)
	assert.Equal(t, nil, err)

	_, err = f.svc.RosterService.ReportKill(game.ID, "tg:3", "Alice")
	assert.Equal(t, nil, err)
	before, _ := f.svc.StandingsService.Counts(game.ID)

	_, err = f.svc.GameService.LeaveGame("tg:2")
	assert.T(t, errors.Is(err, ErrGameState), err)
	// Bob scored, so leaving would take the point away from Blue.
	_, err = f.svc.GameService.LeaveGame("tg:3")
	assert.T(t, errors.Is(err, ErrGameState), err)

	after, _ := f.svc.StandingsService.Counts(game.ID)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, after.PlayersOut)
	_, member, err := f.svc.GameService.CurrentGame("tg:2")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", member.PlayerID)
}

func TestLeaveFinishedGameKeepsRoster(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	f.join(t, game, "tg:2", "Alice")
	f.join(t, game, "tg:3", "Bob")
	_, _ = f.svc.RosterService.CreateTeam(game.ID, "Red", "tg:2")
	_, _ = f.svc.RosterService.CreateTeam(game.ID, "Blue", "tg:3")
	_, _ = f.svc.RosterService.ReportKill(game.ID, "tg:3", "Alice")
	_, err := f.svc.GameService.FinishGame(game.Code)
	assert.Equal(t, nil, err)

	left, err := f.svc.GameService.LeaveGame("tg:2")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, left.CurrentPlayers)

	rows, _ := f.svc.StandingsService.Leaderboard(game.ID)
	assert.Equal(t, "Blue", rows[0].Team.Name)
	assert.Equal(t, 1, rows[0].Points)
	assert.Equal(t, 1, len(rows[1].Team.Players))

	// Free to join another game now.
	other := f.createGame(t, "tg:9", 4)
	f.join(t, other, "tg:2", "Alice")
}

func TestJoinDuringSheetSyncKeepsSeatCount(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 2)
	f.sheets.onCreate = func() {
		f.join(t, game, "tg:2", "Alice")
	}

	_, err := f.svc.StandingsService.SyncToGoogleSheet(game.ID)
	assert.Equal(t, nil, err)

	stored, _ := f.repos.Game.GetByID(game.ID)
	members, _ := f.svc.GameService.Members(game.ID)
	assert.Equal(t, 2, len(members))
	assert.Equal(t, 2, stored.CurrentPlayers)
	assert.Equal(t, "sheet-1", stored.SheetID)

	_, err = f.svc.GameService.JoinGame(game.Code, "secret1", "tg:3", "Bob")
	assert.Equal(t, ErrGameFull, err)
}

type brokenMembers struct {
	repository.Member
}

func (brokenMembers) AddMember(*models.Member) error {
	return errors.New("connection reset")
}

func TestJoinFreesSeatWhenMembershipFails(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 3)

	games := NewGameServiceImpl(f.repos.Game, brokenMembers{Member: f.repos.Member}, NewSessions(f.repos.Roster), nopLogger{})
	_, err := games.JoinGame(game.Code, "secret1", "tg:2", "Alice")
	assert.NotEqual(t, nil, err)

	stored, _ := f.repos.Game.GetByID(game.ID)
	assert.Equal(t, 1, stored.CurrentPlayers)
}

func TestFinishedGameLeavesSessionCache(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 5)

	sessions := NewSessions(f.repos.Roster)
	games := NewGameServiceImpl(f.repos.Game, f.repos.Member, sessions, nopLogger{})
	roster := NewRosterServiceImpl(f.repos.Game, f.repos.Member, sessions, nopLogger{})
	board := NewStandingsServiceImpl(f.repos.Game, sessions, nil, "", nopLogger{})

	_, err := roster.CreateTeam(game.ID, "Red", "")
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, sessions.Size())

	_, err = games.FinishGame(game.Code)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, sessions.Size())

	rows, err := board.Leaderboard(game.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Red", rows[0].Team.Name)
	assert.Equal(t, 0, sessions.Size())
}

func TestGameTransitions(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 5)

	started, err := f.svc.GameService.StartGame(game.Code)
	assert.Equal(t, nil, err)
	assert.Equal(t, models.GameActive, started.Status)

	_, err = f.svc.GameService.StartGame(game.Code)
	assert.T(t, errors.Is(err, ErrGameState), err)

	finished, err := f.svc.GameService.FinishGame(game.Code)
	assert.Equal(t, nil, err)
	assert.Equal(t, models.GameFinished, finished.Status)

	_, err = f.svc.RosterService.CreateTeam(game.ID, "Late", "")
	assert.Equal(t, ErrGameFinished, err)
}

func TestDeleteGame(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 5)
	_, _ = f.svc.RosterService.CreateTeam(game.ID, "Red", "")

	assert.Equal(t, nil, f.svc.GameService.DeleteGame(game.Code))

	_, err := f.svc.GameService.GetGame(game.Code)
	assert.Equal(t, repository.ErrGameNotFound, err)
	_, _, err = f.svc.GameService.CurrentGame("tg:1")
	assert.Equal(t, ErrNotInGame, err)
}

func TestLocationURL(t *testing.T) {
	game := &models.Game{Location: "Lincoln High School & Park"}
	assert.Equal(t, "https://maps.google.com/?q=Lincoln%20High%20School%20%26%20Park", LocationURL(game))
}
