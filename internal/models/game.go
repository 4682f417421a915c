package models

import "time"

type GameStatus string

const (
	GameWaiting  GameStatus = "waiting"
	GameActive   GameStatus = "active"
	GameFinished GameStatus = "finished"
)

type Game struct {
	ID             string
	Code           string
	Name           string
	Location       string
	PasswordHash   string
	MaxPlayers     int
	CurrentPlayers int
	HostID         string
	Status         GameStatus
	Rules          []string
	SheetID        string
	CreatedAt      time.Time
}

func (g *Game) IsFull() bool {
	return g.CurrentPlayers >= g.MaxPlayers
}

type MemberRole string

const (
	RoleHost   MemberRole = "host"
	RoleLeader MemberRole = "leader"
	RolePlayer MemberRole = "player"
)

// Member links an external user identity to a game. PlayerID stays empty
// until the user joins a team.
type Member struct {
	GameID      string
	UserID      string
	DisplayName string
	Role        MemberRole
	PlayerID    string
	JoinedAt    time.Time
}

type Message struct {
	ID        int64
	GameID    string
	UserID    string
	Author    string
	Text      string
	CreatedAt time.Time
}
