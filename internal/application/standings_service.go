package application

import (
	"errors"
	"fmt"

	"assassin/internal/models"
	"assassin/internal/repository"
	"assassin/internal/standings"
	"assassin/pkg/sheets"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
)

type StandingsServiceImpl struct {
	games        repository.Game
	sessions     *Sessions
	sheetsClient sheets.Client
	ownerEmail   string
	logger       Logger
}

func NewStandingsServiceImpl(games repository.Game, sessions *Sessions, sheetsClient sheets.Client, ownerEmail string, logger Logger) *StandingsServiceImpl {
	return &StandingsServiceImpl{
		games:        games,
		sessions:     sessions,
		sheetsClient: sheetsClient,
		ownerEmail:   ownerEmail,
		logger:       logger,
	}
}

func (s *StandingsServiceImpl) Leaderboard(gameID string) ([]standings.Standing, error) {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	var rows []standings.Standing
	err = s.sessions.ViewGame(game, func(e *standings.Engine) error {
		rows = e.ComputeStandings()
		return nil
	})
	return rows, err
}

func (s *StandingsServiceImpl) Counts(gameID string) (standings.Counts, error) {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return standings.Counts{}, err
	}
	var counts standings.Counts
	err = s.sessions.ViewGame(game, func(e *standings.Engine) error {
		counts = e.ComputeAggregateCounts()
		return nil
	})
	return counts, err
}

type report struct {
	game   *models.Game
	rows   []standings.Standing
	counts standings.Counts
}

func (s *StandingsServiceImpl) buildReport(gameID string) (*report, error) {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	r := &report{game: game}
	err = s.sessions.ViewGame(game, func(e *standings.Engine) error {
		r.rows = e.ComputeStandings()
		r.counts = e.ComputeAggregateCounts()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ExcelReport renders standings and the full player list to an xlsx file and
// returns it with a file name derived from the game name.
func (s *StandingsServiceImpl) ExcelReport(gameID string) ([]byte, string, error) {
	r, err := s.buildReport(gameID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(excelStandingsSheet); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(excelPlayersSheet); err != nil {
		return nil, "", err
	}
	f.DeleteSheet("Sheet1")

	if err := writeRows(f, excelStandingsSheet, standingsRows(r)); err != nil {
		return nil, "", err
	}
	if err := writeRows(f, excelPlayersSheet, playerRows(r.rows)); err != nil {
		return nil, "", err
	}

	f.SetColWidth(excelStandingsSheet, "A", "A", 8)
	f.SetColWidth(excelStandingsSheet, "B", "B", 24)
	f.SetColWidth(excelStandingsSheet, "C", "F", 14)
	f.SetColWidth(excelPlayersSheet, "A", "B", 24)
	f.SetColWidth(excelPlayersSheet, "C", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), reportFileName(r.game), nil
}

func reportFileName(game *models.Game) string {
	name := slug.Make(game.Name)
	if name == "" {
		name = game.Code
	}
	return name + "-standings.xlsx"
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func standingsRows(r *report) [][]interface{} {
	rows := [][]interface{}{
		{"Rank", "Team", "Status", "Points", "Active", "Players"},
	}
	for _, st := range r.rows {
		rows = append(rows, []interface{}{
			st.Rank,
			st.Team.Name,
			st.Team.Status.String(),
			st.Points,
			st.Team.ActivePlayers(),
			len(st.Team.Players),
		})
	}

	c := r.counts
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Players", c.TotalPlayers},
		[]interface{}{"In game", c.PlayersInGame},
		[]interface{}{"Out", c.PlayersOut},
		[]interface{}{"Spectating", c.Spectators},
		[]interface{}{"Teams in game", c.TeamsInGame},
		[]interface{}{"Teams out", c.TeamsOut},
	)
	return rows
}

func playerRows(teams []standings.Standing) [][]interface{} {
	rows := [][]interface{}{
		{"Player", "Team", "Status", "Kills"},
	}
	for _, st := range teams {
		for _, p := range st.Team.Players {
			rows = append(rows, []interface{}{p.Name, st.Team.Name, p.Status.String(), p.Kills})
		}
	}
	return rows
}

// SyncToGoogleSheet writes the standings to the game's spreadsheet, creating
// and sharing it on first use.
func (s *StandingsServiceImpl) SyncToGoogleSheet(gameID string) (string, error) {
	if s.sheetsClient == nil {
		return "", ErrSheetsDisabled
	}

	r, err := s.buildReport(gameID)
	if err != nil {
		return "", err
	}
	game := r.game

	if game.SheetID == "" {
		id, _, err := s.sheetsClient.CreateSpreadsheet(sheetsTitlePrefix + game.Name)
		if err != nil {
			return "", err
		}
		if s.ownerEmail != "" {
			if err := s.sheetsClient.AddPermission(id, s.ownerEmail, sheetsPermissionRole); err != nil {
				s.logger.Warn("failed to share sheet with owner: %v", err)
			}
		}
		if err := s.sheetsClient.MakePublic(id); err != nil {
			s.logger.Warn("failed to make sheet public: %v", err)
		}

		game.SheetID = id
		if err := s.games.SetSheetID(game.ID, id); err != nil {
			return "", fmt.Errorf("failed to store sheet id: %w", err)
		}
	}

	values := standingsRows(r)
	values = append(values, []interface{}{})
	values = append(values, playerRows(r.rows)...)

	if err := s.sheetsClient.ClearRange(game.SheetID, sheetsClearRange); err != nil {
		s.logger.Error("failed to clear sheet: %v", err)
	}
	if err := s.sheetsClient.UpdateValues(game.SheetID, "A1", values); err != nil {
		return "", fmt.Errorf("failed to update standings: %w", err)
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", game.SheetID), nil
}

// SyncAll refreshes every active game that already has a spreadsheet.
func (s *StandingsServiceImpl) SyncAll() error {
	if s.sheetsClient == nil {
		return nil
	}

	games, err := s.games.ListByStatus(models.GameActive)
	if err != nil {
		return err
	}

	var errs []error
	for _, g := range games {
		if g.SheetID == "" {
			continue
		}
		if _, err := s.SyncToGoogleSheet(g.ID); err != nil {
			errs = append(errs, fmt.Errorf("game %s: %w", g.Code, err))
		}
	}
	return errors.Join(errs...)
}
