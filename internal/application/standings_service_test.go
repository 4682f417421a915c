package application

import (
	"bytes"
	"testing"

	"assassin/internal/models"

	"github.com/bmizerany/assert"
	"github.com/xuri/excelize/v2"
)

func TestExcelReport(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	seedRedBlue(t, f, game)
	_, err := f.svc.RosterService.Eliminate(game.ID, EliminationInput{
		Team: "Red", Player: "Alice", ByTeam: "Blue", ByPlayer: "Bob",
	})
	assert.Equal(t, nil, err)

	data, name, err := f.svc.StandingsService.ExcelReport(game.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, "senior-assassin-2026-standings.xlsx", name)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	assert.Equal(t, nil, err)
	defer book.Close()

	assert.Equal(t, []string{excelStandingsSheet, excelPlayersSheet}, book.GetSheetList())

	top, _ := book.GetCellValue(excelStandingsSheet, "B2")
	points, _ := book.GetCellValue(excelStandingsSheet, "D2")
	assert.Equal(t, "Blue", top)
	assert.Equal(t, "1", points)

	// Players follow standings order, so Red's Alice comes after Blue's Bob.
	player, _ := book.GetCellValue(excelPlayersSheet, "A3")
	status, _ := book.GetCellValue(excelPlayersSheet, "C3")
	assert.Equal(t, "Alice", player)
	assert.Equal(t, "eliminated", status)
}

func TestSyncToGoogleSheetCreatesOnce(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	seedRedBlue(t, f, game)

	url, err := f.svc.StandingsService.SyncToGoogleSheet(game.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1", url)
	assert.Equal(t, []string{"sheet-1:owner@example.com:writer"}, f.sheets.permissions)
	assert.Equal(t, []string{"sheet-1"}, f.sheets.public)

	_, err = f.svc.StandingsService.SyncToGoogleSheet(game.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, f.sheets.created)

	stored, _ := f.repos.Game.GetByID(game.ID)
	assert.Equal(t, "sheet-1", stored.SheetID)

	values := f.sheets.updates["sheet-1"]
	assert.Equal(t, []interface{}{"Rank", "Team", "Status", "Points", "Active", "Players"}, values[0])
}

func TestSyncAllOnlyTouchesActiveGamesWithSheets(t *testing.T) {
	f := newFixture(t)
	withSheet := f.createGame(t, "tg:1", 6)
	withoutSheet := f.createGame(t, "tg:2", 6)

	_, err := f.svc.StandingsService.SyncToGoogleSheet(withSheet.ID)
	assert.Equal(t, nil, err)
	delete(f.sheets.updates, "sheet-1")

	// Waiting games are skipped.
	assert.Equal(t, nil, f.svc.StandingsService.SyncAll())
	assert.Equal(t, 0, len(f.sheets.updates))

	_, _ = f.svc.GameService.StartGame(withSheet.Code)
	_, _ = f.svc.GameService.StartGame(withoutSheet.Code)
	assert.Equal(t, nil, f.svc.StandingsService.SyncAll())
	assert.Equal(t, 1, len(f.sheets.updates))
	assert.Equal(t, 1, f.sheets.created)
}

func TestSyncAllReportsFailures(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	_, _ = f.svc.StandingsService.SyncToGoogleSheet(game.ID)
	_, _ = f.svc.GameService.StartGame(game.Code)

	f.sheets.failUpdate = true
	assert.NotEqual(t, nil, f.svc.StandingsService.SyncAll())
}

func TestSyncWithoutClient(t *testing.T) {
	f := newFixture(t)
	game := f.createGame(t, "tg:1", 6)
	svc := NewService(f.repos, nil, "", nopLogger{})

	_, err := svc.StandingsService.SyncToGoogleSheet(game.ID)
	assert.Equal(t, ErrSheetsDisabled, err)
	assert.Equal(t, nil, svc.StandingsService.SyncAll())
}

func TestReportFileNameFallsBackToCode(t *testing.T) {
	assert.Equal(t, "ABC123-standings.xlsx", reportFileName(&models.Game{Name: "!!!", Code: "ABC123"}))
}
