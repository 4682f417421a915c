package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"assassin/internal/standings"
)

type RosterPostgres struct {
	db *sql.DB
}

func NewRosterPostgres(db *sql.DB) *RosterPostgres {
	return &RosterPostgres{db: db}
}

func (r *RosterPostgres) SaveRoster(gameID string, roster standings.Roster) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO rosters (game_id, data) VALUES ($1, $2)
		ON CONFLICT (game_id) DO UPDATE SET data = $2, updated_at = NOW()
	`, gameID, data)
	if err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

func (r *RosterPostgres) LoadRoster(gameID string) (*standings.Roster, error) {
	var data []byte
	err := r.db.QueryRow(`SELECT data FROM rosters WHERE game_id = $1`, gameID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var roster standings.Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	return &roster, nil
}
