package repository

import (
	"database/sql"
	"fmt"

	"assassin/internal/models"
)

type HubPostgres struct {
	db *sql.DB
}

func NewHubPostgres(db *sql.DB) *HubPostgres {
	return &HubPostgres{db: db}
}

func (r *HubPostgres) CreateMessage(msg *models.Message) error {
	err := r.db.QueryRow(`
		INSERT INTO hub_messages (game_id, user_id, author, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, msg.GameID, msg.UserID, msg.Author, msg.Text).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessages returns the latest messages, oldest first.
func (r *HubPostgres) ListMessages(gameID string, limit int) ([]models.Message, error) {
	rows, err := r.db.Query(`
		SELECT id, game_id, user_id, author, text, created_at FROM (
			SELECT id, game_id, user_id, author, text, created_at
			FROM hub_messages WHERE game_id = $1
			ORDER BY id DESC LIMIT $2
		) latest ORDER BY id
	`, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.GameID, &m.UserID, &m.Author, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
