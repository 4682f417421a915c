package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"assassin/internal/models"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type GamePostgres struct {
	db *sql.DB
}

func NewGamePostgres(db *sql.DB) *GamePostgres {
	return &GamePostgres{db: db}
}

const gameColumns = `id, code, name, location, password_hash, max_players, current_players,
	host_id, status, rules, sheet_id, created_at`

func (r *GamePostgres) Create(game *models.Game) error {
	fixedCode := game.Code != ""

	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		if !fixedCode {
			game.Code = generateCode(joinCodeLength)
		}

		err := r.db.QueryRow(`
			INSERT INTO games (id, code, name, location, password_hash, max_players, current_players, host_id, status, rules, sheet_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at
		`, game.ID, game.Code, game.Name, game.Location, game.PasswordHash, game.MaxPlayers,
			game.CurrentPlayers, game.HostID, game.Status, pq.Array(game.Rules), game.SheetID,
		).Scan(&game.CreatedAt)
		if err == nil {
			return nil
		}

		var pqErr *pq.Error
		if !fixedCode && errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "games_code_key" {
			continue
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return fmt.Errorf("failed to allocate a unique join code")
}

func (r *GamePostgres) GetByID(id string) (*models.Game, error) {
	row := r.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *GamePostgres) GetByCode(code string) (*models.Game, error) {
	row := r.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE code = UPPER($1)`, code)
	return scanGame(row)
}

func (r *GamePostgres) List() ([]models.Game, error) {
	rows, err := r.db.Query(`SELECT ` + gameColumns + ` FROM games ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func (r *GamePostgres) ListByStatus(status models.GameStatus) ([]models.Game, error) {
	rows, err := r.db.Query(`SELECT `+gameColumns+` FROM games WHERE status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func (r *GamePostgres) TakeSeat(id string) (int, error) {
	var n int
	err := r.db.QueryRow(`
		UPDATE games SET current_players = current_players + 1
		WHERE id = $1 AND current_players < max_players
		RETURNING current_players
	`, id).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, r.missingOr(id, ErrNoSeats)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to take seat: %w", err)
	}
	return n, nil
}

func (r *GamePostgres) FreeSeat(id string) (int, error) {
	var n int
	err := r.db.QueryRow(`
		UPDATE games SET current_players = GREATEST(current_players - 1, 0)
		WHERE id = $1
		RETURNING current_players
	`, id).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, ErrGameNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to free seat: %w", err)
	}
	return n, nil
}

func (r *GamePostgres) SetStatus(id string, to models.GameStatus, from ...models.GameStatus) error {
	allowed := make([]string, len(from))
	for i, st := range from {
		allowed[i] = string(st)
	}
	res, err := r.db.Exec(`
		UPDATE games SET status = $2
		WHERE id = $1 AND (cardinality($3::text[]) = 0 OR status = ANY($3::text[]))
	`, id, string(to), pq.Array(allowed))
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if err := expectAffected(res, ErrStatusChanged); err != ErrStatusChanged {
		return err
	}
	return r.missingOr(id, ErrStatusChanged)
}

func (r *GamePostgres) SetSheetID(id, sheetID string) error {
	res, err := r.db.Exec(`UPDATE games SET sheet_id = $2 WHERE id = $1`, id, sheetID)
	if err != nil {
		return fmt.Errorf("failed to update sheet id: %w", err)
	}
	return expectAffected(res, ErrGameNotFound)
}

// missingOr tells a conditional update that matched nothing because the game
// is gone apart from one whose condition failed.
func (r *GamePostgres) missingOr(id string, err error) error {
	var exists bool
	if qErr := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`, id).Scan(&exists); qErr != nil {
		return fmt.Errorf("failed to check game: %w", qErr)
	}
	if !exists {
		return ErrGameNotFound
	}
	return err
}

func (r *GamePostgres) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return expectAffected(res, ErrGameNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*models.Game, error) {
	var g models.Game
	err := row.Scan(&g.ID, &g.Code, &g.Name, &g.Location, &g.PasswordHash, &g.MaxPlayers,
		&g.CurrentPlayers, &g.HostID, &g.Status, pq.Array(&g.Rules), &g.SheetID, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	return &g, nil
}

func scanGames(rows *sql.Rows) ([]models.Game, error) {
	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
