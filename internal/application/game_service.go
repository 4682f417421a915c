package application

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"assassin/internal/models"
	"assassin/internal/repository"
	"assassin/internal/standings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateGameInput struct {
	Name       string
	Location   string
	Password   string
	MaxPlayers int
	HostID     string
	HostName   string
	// HostPlays adds the host as the first member of the game.
	HostPlays bool
}

type GameServiceImpl struct {
	games    repository.Game
	members  repository.Member
	sessions *Sessions
	logger   Logger
}

func NewGameServiceImpl(games repository.Game, members repository.Member, sessions *Sessions, logger Logger) *GameServiceImpl {
	return &GameServiceImpl{
		games:    games,
		members:  members,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *GameServiceImpl) CreateGame(in CreateGameInput) (*models.Game, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" {
		return nil, fmt.Errorf("%w: game name is required", ErrInvalidInput)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(in.Password); n < minPasswordLength || n > maxPasswordLength {
		return nil, fmt.Errorf("%w: password must be %d to %d characters", ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}
	maxPlayers := in.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = defaultMaxPlayers
	}
	if maxPlayers < minPlayers {
		return nil, fmt.Errorf("%w: a game needs at least %d players", ErrInvalidInput, minPlayers)
	}
	if strings.TrimSpace(in.HostID) == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidInput)
	}

	if in.HostPlays {
		existing, err := s.members.GetMemberByUser(in.HostID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrAlreadyInGame
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	game := &models.Game{
		ID:           uuid.NewString(),
		Name:         name,
		Location:     location,
		PasswordHash: string(hash),
		MaxPlayers:   maxPlayers,
		HostID:       in.HostID,
		Status:       models.GameWaiting,
		Rules:        append([]string(nil), defaultRules...),
	}
	if in.HostPlays {
		game.CurrentPlayers = 1
	}

	if err := s.games.Create(game); err != nil {
		return nil, err
	}

	if in.HostPlays {
		host := &models.Member{
			GameID:      game.ID,
			UserID:      in.HostID,
			DisplayName: displayNameOr(in.HostName, in.HostID),
			Role:        models.RoleHost,
		}
		if err := s.members.AddMember(host); err != nil {
			if delErr := s.games.Delete(game.ID); delErr != nil {
				s.logger.Error("failed to roll back game %s: %v", game.ID, delErr)
			}
			return nil, err
		}
	}

	s.logger.Info("game %s (%s) created by %s", game.Code, game.Name, game.HostID)
	return game, nil
}

func (s *GameServiceImpl) ListGames() ([]models.Game, error) {
	return s.games.List()
}

func (s *GameServiceImpl) GetGame(code string) (*models.Game, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: game code is required", ErrInvalidInput)
	}
	return s.games.GetByCode(code)
}

func (s *GameServiceImpl) GetGameByID(id string) (*models.Game, error) {
	return s.games.GetByID(id)
}

func (s *GameServiceImpl) JoinGame(code, password, userID, displayName string) (*models.Game, error) {
	game, err := s.GetGame(code)
	if err != nil {
		return nil, err
	}
	if game.Status == models.GameFinished {
		return nil, ErrGameFinished
	}

	existing, err := s.members.GetMemberByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyInGame
	}

	if err := bcrypt.CompareHashAndPassword([]byte(game.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	if game.IsFull() {
		return nil, ErrGameFull
	}

	seats, err := s.games.TakeSeat(game.ID)
	if errors.Is(err, repository.ErrNoSeats) {
		return nil, ErrGameFull
	}
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		GameID:      game.ID,
		UserID:      userID,
		DisplayName: displayNameOr(displayName, userID),
		Role:        models.RolePlayer,
	}
	if err := s.members.AddMember(member); err != nil {
		if _, freeErr := s.games.FreeSeat(game.ID); freeErr != nil {
			s.logger.Error("failed to free seat in game %s: %v", game.Code, freeErr)
		}
		return nil, err
	}
	game.CurrentPlayers = seats

	s.logger.Info("%s joined game %s", userID, game.Code)
	return game, nil
}

// LeaveGame drops the membership and, when the user was on a team, their
// player entry in the roster. Players who are no longer active or hold kills
// stay in the roster until the game is finished. Leaving a finished game
// keeps the final roster as it is.
func (s *GameServiceImpl) LeaveGame(userID string) (*models.Game, error) {
	member, err := s.members.GetMemberByUser(userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotInGame
	}

	game, err := s.games.GetByID(member.GameID)
	if err != nil {
		return nil, err
	}

	if member.PlayerID != "" && game.Status != models.GameFinished {
		err := s.sessions.Mutate(game.ID, func(e *standings.Engine) error {
			ref, err := e.Locate(member.PlayerID)
			if err != nil {
				return err
			}
			p, _ := e.Player(ref)
			if p.Status != standings.PlayerActive || p.Kills > 0 {
				return fmt.Errorf("%w: %s can leave once the game is finished", ErrGameState, p.Name)
			}
			return e.RemovePlayer(ref)
		})
		if err != nil && !errors.Is(err, standings.ErrPlayerNotFound) {
			return nil, err
		}
	}

	if err := s.members.RemoveMember(game.ID, userID); err != nil {
		return nil, err
	}

	seats, err := s.games.FreeSeat(game.ID)
	if err != nil {
		return nil, err
	}
	game.CurrentPlayers = seats

	s.logger.Info("%s left game %s", userID, game.Code)
	return game, nil
}

func (s *GameServiceImpl) CurrentGame(userID string) (*models.Game, *models.Member, error) {
	member, err := s.members.GetMemberByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, ErrNotInGame
	}
	game, err := s.games.GetByID(member.GameID)
	if err != nil {
		return nil, nil, err
	}
	return game, member, nil
}

func (s *GameServiceImpl) StartGame(code string) (*models.Game, error) {
	return s.transition(code, models.GameActive, models.GameWaiting)
}

func (s *GameServiceImpl) FinishGame(code string) (*models.Game, error) {
	return s.transition(code, models.GameFinished, models.GameWaiting, models.GameActive)
}

func (s *GameServiceImpl) transition(code string, to models.GameStatus, from ...models.GameStatus) (*models.Game, error) {
	game, err := s.GetGame(code)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, st := range from {
		if game.Status == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: game %s is %s", ErrGameState, game.Code, game.Status)
	}

	err = s.games.SetStatus(game.ID, to, from...)
	if errors.Is(err, repository.ErrStatusChanged) {
		return nil, fmt.Errorf("%w: game %s changed status meanwhile", ErrGameState, game.Code)
	}
	if err != nil {
		return nil, err
	}
	game.Status = to
	if to == models.GameFinished {
		s.sessions.Forget(game.ID)
	}
	s.logger.Info("game %s is now %s", game.Code, game.Status)
	return game, nil
}

func (s *GameServiceImpl) DeleteGame(code string) error {
	game, err := s.GetGame(code)
	if err != nil {
		return err
	}
	if err := s.games.Delete(game.ID); err != nil {
		return err
	}
	s.sessions.Forget(game.ID)
	s.logger.Info("game %s deleted", game.Code)
	return nil
}

func (s *GameServiceImpl) Members(gameID string) ([]models.Member, error) {
	return s.members.ListMembers(gameID)
}
