package application

import (
	"assassin/internal/models"
	"assassin/internal/repository"
	"assassin/internal/standings"
	"assassin/pkg/sheets"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type GameService interface {
	CreateGame(in CreateGameInput) (*models.Game, error)
	ListGames() ([]models.Game, error)
	GetGame(code string) (*models.Game, error)
	GetGameByID(id string) (*models.Game, error)
	JoinGame(code, password, userID, displayName string) (*models.Game, error)
	LeaveGame(userID string) (*models.Game, error)
	CurrentGame(userID string) (*models.Game, *models.Member, error)
	StartGame(code string) (*models.Game, error)
	FinishGame(code string) (*models.Game, error)
	DeleteGame(code string) error
	Members(gameID string) ([]models.Member, error)
}

type RosterService interface {
	CreateTeam(gameID, name, creatorUserID string) (standings.Team, error)
	JoinTeam(gameID, teamName, userID string) (standings.Team, error)
	AddPlayer(gameID, teamName, playerName string) (standings.Player, error)
	Eliminate(gameID string, in EliminationInput) (*EliminationResult, error)
	ReportKill(gameID, userID, targetName string) (*EliminationResult, error)
	Revive(gameID, teamName, playerName string) (standings.Player, error)
	Spectate(gameID, teamName, playerName string) (standings.Player, error)
	SetTeamStatus(gameID, teamName string, status standings.TeamStatus) error
	DeleteTeam(gameID, teamName string) error
	Teams(gameID string) ([]standings.Team, error)
}

type StandingsService interface {
	Leaderboard(gameID string) ([]standings.Standing, error)
	Counts(gameID string) (standings.Counts, error)
	ExcelReport(gameID string) ([]byte, string, error)
	SyncToGoogleSheet(gameID string) (string, error)
	SyncAll() error
}

type HubService interface {
	Post(gameID, userID, author, text string) (*models.Message, error)
	Recent(gameID string, limit int) ([]models.Message, error)
}

type Service struct {
	GameService      GameService
	RosterService    RosterService
	StandingsService StandingsService
	HubService       HubService
}

// NewService wires every service over one repository. sheetsClient may be nil
// when Google credentials are not configured.
func NewService(repos *repository.Repository, sheetsClient sheets.Client, ownerEmail string, logger Logger) *Service {
	sessions := NewSessions(repos.Roster)
	return &Service{
		GameService:      NewGameServiceImpl(repos.Game, repos.Member, sessions, logger),
		RosterService:    NewRosterServiceImpl(repos.Game, repos.Member, sessions, logger),
		StandingsService: NewStandingsServiceImpl(repos.Game, sessions, sheetsClient, ownerEmail, logger),
		HubService:       NewHubServiceImpl(repos.Game, repos.Hub, logger),
	}
}
