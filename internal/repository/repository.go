package repository

import (
	"database/sql"
	"errors"

	"assassin/internal/models"
	"assassin/internal/standings"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrNoSeats       = errors.New("game has no free seats")
	ErrStatusChanged = errors.New("game status changed")
)

type Game interface {
	// Create assigns a fresh join code when game.Code is empty.
	Create(game *models.Game) error
	GetByID(id string) (*models.Game, error)
	GetByCode(code string) (*models.Game, error)
	List() ([]models.Game, error)
	ListByStatus(status models.GameStatus) ([]models.Game, error)
	// TakeSeat counts one more player unless the game is full and returns
	// the new player count.
	TakeSeat(id string) (int, error)
	FreeSeat(id string) (int, error)
	// SetStatus only applies when the stored status is one of from.
	SetStatus(id string, to models.GameStatus, from ...models.GameStatus) error
	SetSheetID(id, sheetID string) error
	Delete(id string) error
}

type Member interface {
	AddMember(m *models.Member) error
	GetMemberByUser(userID string) (*models.Member, error)
	GetMemberByPlayer(gameID, playerID string) (*models.Member, error)
	ListMembers(gameID string) ([]models.Member, error)
	UpdateMember(m *models.Member) error
	RemoveMember(gameID, userID string) error
}

type Roster interface {
	SaveRoster(gameID string, roster standings.Roster) error
	LoadRoster(gameID string) (*standings.Roster, error)
}

type Hub interface {
	CreateMessage(msg *models.Message) error
	ListMessages(gameID string, limit int) ([]models.Message, error)
}

type Repository struct {
	Game
	Member
	Roster
	Hub
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Game:   NewGamePostgres(db),
		Member: NewMemberPostgres(db),
		Roster: NewRosterPostgres(db),
		Hub:    NewHubPostgres(db),
		db:     db,
	}
}

// NewMemoryRepository keeps everything in process memory. Used by tests and
// by local runs with STORAGE=memory.
func NewMemoryRepository() *Repository {
	store := newMemoryStore()
	return &Repository{
		Game:   &GameMemory{store: store},
		Member: &MemberMemory{store: store},
		Roster: &RosterMemory{store: store},
		Hub:    &HubMemory{store: store},
	}
}

func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
