package repository

import (
	"database/sql"
	"fmt"

	"assassin/internal/models"
)

type MemberPostgres struct {
	db *sql.DB
}

func NewMemberPostgres(db *sql.DB) *MemberPostgres {
	return &MemberPostgres{db: db}
}

func (r *MemberPostgres) AddMember(m *models.Member) error {
	err := r.db.QueryRow(`
		INSERT INTO game_members (game_id, user_id, display_name, role, player_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING joined_at
	`, m.GameID, m.UserID, m.DisplayName, m.Role, m.PlayerID).Scan(&m.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *MemberPostgres) GetMemberByUser(userID string) (*models.Member, error) {
	var m models.Member
	err := r.db.QueryRow(`
		SELECT game_id, user_id, display_name, role, player_id, joined_at
		FROM game_members WHERE user_id = $1
	`, userID).Scan(&m.GameID, &m.UserID, &m.DisplayName, &m.Role, &m.PlayerID, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

func (r *MemberPostgres) GetMemberByPlayer(gameID, playerID string) (*models.Member, error) {
	var m models.Member
	err := r.db.QueryRow(`
		SELECT game_id, user_id, display_name, role, player_id, joined_at
		FROM game_members WHERE game_id = $1 AND player_id = $2
	`, gameID, playerID).Scan(&m.GameID, &m.UserID, &m.DisplayName, &m.Role, &m.PlayerID, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

func (r *MemberPostgres) ListMembers(gameID string) ([]models.Member, error) {
	rows, err := r.db.Query(`
		SELECT game_id, user_id, display_name, role, player_id, joined_at
		FROM game_members WHERE game_id = $1 ORDER BY joined_at
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.GameID, &m.UserID, &m.DisplayName, &m.Role, &m.PlayerID, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberPostgres) UpdateMember(m *models.Member) error {
	res, err := r.db.Exec(`
		UPDATE game_members SET display_name = $3, role = $4, player_id = $5
		WHERE game_id = $1 AND user_id = $2
	`, m.GameID, m.UserID, m.DisplayName, m.Role, m.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return expectAffected(res, sql.ErrNoRows)
}

func (r *MemberPostgres) RemoveMember(gameID, userID string) error {
	_, err := r.db.Exec(`DELETE FROM game_members WHERE game_id = $1 AND user_id = $2`, gameID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
