package application

import (
	"fmt"
	"testing"

	"assassin/internal/models"
	"assassin/internal/repository"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

type fakeSheets struct {
	created     int
	permissions []string
	public      []string
	cleared     []string
	updates     map[string][][]interface{}
	failUpdate  bool
	// onCreate runs inside CreateSpreadsheet, while a sync is in flight.
	onCreate func()
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{updates: make(map[string][][]interface{})}
}

func (f *fakeSheets) CreateSpreadsheet(title string) (string, string, error) {
	f.created++
	if f.onCreate != nil {
		f.onCreate()
	}
	id := fmt.Sprintf("sheet-%d", f.created)
	return id, "https://docs.google.com/spreadsheets/d/" + id, nil
}

func (f *fakeSheets) AddPermission(spreadsheetID, email, role string) error {
	f.permissions = append(f.permissions, spreadsheetID+":"+email+":"+role)
	return nil
}

func (f *fakeSheets) MakePublic(spreadsheetID string) error {
	f.public = append(f.public, spreadsheetID)
	return nil
}

func (f *fakeSheets) ClearRange(spreadsheetID, rangeStr string) error {
	f.cleared = append(f.cleared, spreadsheetID)
	return nil
}

func (f *fakeSheets) UpdateValues(spreadsheetID, rangeStr string, values [][]interface{}) error {
	if f.failUpdate {
		return fmt.Errorf("quota exceeded")
	}
	f.updates[spreadsheetID] = values
	return nil
}

type fixture struct {
	repos  *repository.Repository
	sheets *fakeSheets
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repository.NewMemoryRepository()
	sheets := newFakeSheets()
	return &fixture{
		repos:  repos,
		sheets: sheets,
		svc:    NewService(repos, sheets, "owner@example.com", nopLogger{}),
	}
}

func (f *fixture) createGame(t *testing.T, host string, maxPlayers int) *models.Game {
	t.Helper()
	game, err := f.svc.GameService.CreateGame(CreateGameInput{
		Name:       "Senior Assassin 2026",
		Location:   "Lincoln High School",
		Password:   "secret1",
		MaxPlayers: maxPlayers,
		HostID:     host,
		HostName:   "Host",
		HostPlays:  true,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

func (f *fixture) join(t *testing.T, game *models.Game, user, name string) {
	t.Helper()
	if _, err := f.svc.GameService.JoinGame(game.Code, "secret1", user, name); err != nil {
		t.Fatalf("join %s: %v", user, err)
	}
}
