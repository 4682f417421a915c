package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"assassin/internal/models"
	"assassin/internal/standings"
)

type memoryStore struct {
	mu        sync.RWMutex
	games     map[string]models.Game
	order     []string
	members   map[string]models.Member // user id -> membership
	rosters   map[string][]byte
	messages  []models.Message
	nextMsgID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		games:   make(map[string]models.Game),
		members: make(map[string]models.Member),
		rosters: make(map[string][]byte),
	}
}

func copyGame(g models.Game) models.Game {
	g.Rules = append([]string(nil), g.Rules...)
	return g
}

type GameMemory struct {
	store *memoryStore
}

func (r *GameMemory) Create(game *models.Game) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; ok {
		return fmt.Errorf("game %s already exists", game.ID)
	}

	fixedCode := game.Code != ""
	for attempt := 0; ; attempt++ {
		if attempt == joinCodeAttempts {
			return fmt.Errorf("failed to allocate a unique join code")
		}
		if !fixedCode {
			game.Code = generateCode(joinCodeLength)
		}
		if !s.codeTaken(game.Code) {
			break
		}
		if fixedCode {
			return fmt.Errorf("join code %s already in use", game.Code)
		}
	}

	game.CreatedAt = time.Now()
	s.games[game.ID] = copyGame(*game)
	s.order = append(s.order, game.ID)
	return nil
}

func (s *memoryStore) codeTaken(code string) bool {
	for _, g := range s.games {
		if g.Code == code {
			return true
		}
	}
	return false
}

func (r *GameMemory) GetByID(id string) (*models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	g = copyGame(g)
	return &g, nil
}

func (r *GameMemory) GetByCode(code string) (*models.Game, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if strings.EqualFold(g.Code, code) {
			g = copyGame(g)
			return &g, nil
		}
	}
	return nil, ErrGameNotFound
}

func (r *GameMemory) List() ([]models.Game, error) {
	return r.list(func(models.Game) bool { return true }), nil
}

func (r *GameMemory) ListByStatus(status models.GameStatus) ([]models.Game, error) {
	return r.list(func(g models.Game) bool { return g.Status == status }), nil
}

// list walks games newest first.
func (r *GameMemory) list(keep func(models.Game) bool) []models.Game {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []models.Game
	for i := len(s.order) - 1; i >= 0; i-- {
		g := s.games[s.order[i]]
		if keep(g) {
			res = append(res, copyGame(g))
		}
	}
	return res
}

func (r *GameMemory) TakeSeat(id string) (int, error) {
	return r.update(id, func(g *models.Game) error {
		if g.CurrentPlayers >= g.MaxPlayers {
			return ErrNoSeats
		}
		g.CurrentPlayers++
		return nil
	})
}

func (r *GameMemory) FreeSeat(id string) (int, error) {
	return r.update(id, func(g *models.Game) error {
		if g.CurrentPlayers > 0 {
			g.CurrentPlayers--
		}
		return nil
	})
}

func (r *GameMemory) SetStatus(id string, to models.GameStatus, from ...models.GameStatus) error {
	_, err := r.update(id, func(g *models.Game) error {
		if len(from) > 0 && !slices.Contains(from, g.Status) {
			return ErrStatusChanged
		}
		g.Status = to
		return nil
	})
	return err
}

func (r *GameMemory) SetSheetID(id, sheetID string) error {
	_, err := r.update(id, func(g *models.Game) error {
		g.SheetID = sheetID
		return nil
	})
	return err
}

// update applies fn to the stored game under the write lock and returns the
// resulting player count.
func (r *GameMemory) update(id string, fn func(g *models.Game) error) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return 0, ErrGameNotFound
	}
	if err := fn(&g); err != nil {
		return 0, err
	}
	s.games[id] = g
	return g.CurrentPlayers, nil
}

func (r *GameMemory) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(s.games, id)
	delete(s.rosters, id)
	for i, gid := range s.order {
		if gid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for user, m := range s.members {
		if m.GameID == id {
			delete(s.members, user)
		}
	}
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.GameID != id {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return nil
}

type MemberMemory struct {
	store *memoryStore
}

func (r *MemberMemory) AddMember(m *models.Member) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[m.GameID]; !ok {
		return ErrGameNotFound
	}
	if _, ok := s.members[m.UserID]; ok {
		return fmt.Errorf("user %s is already a member of a game", m.UserID)
	}
	m.JoinedAt = time.Now()
	s.members[m.UserID] = *m
	return nil
}

func (r *MemberMemory) GetMemberByUser(userID string) (*models.Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[userID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MemberMemory) GetMemberByPlayer(gameID, playerID string) (*models.Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.GameID == gameID && m.PlayerID != "" && m.PlayerID == playerID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MemberMemory) ListMembers(gameID string) ([]models.Member, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []models.Member
	for _, m := range s.members {
		if m.GameID == gameID {
			res = append(res, m)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].JoinedAt.Before(res[j].JoinedAt)
	})
	return res, nil
}

func (r *MemberMemory) UpdateMember(m *models.Member) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.members[m.UserID]
	if !ok || old.GameID != m.GameID {
		return sql.ErrNoRows
	}
	updated := *m
	updated.JoinedAt = old.JoinedAt
	s.members[m.UserID] = updated
	return nil
}

func (r *MemberMemory) RemoveMember(gameID, userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.members[userID]; ok && m.GameID == gameID {
		delete(s.members, userID)
	}
	return nil
}

// RosterMemory stores encoded rosters so callers never share slices with it.
type RosterMemory struct {
	store *memoryStore
}

func (r *RosterMemory) SaveRoster(gameID string, roster standings.Roster) error {
	data, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[gameID]; !ok {
		return ErrGameNotFound
	}
	s.rosters[gameID] = data
	return nil
}

func (r *RosterMemory) LoadRoster(gameID string) (*standings.Roster, error) {
	s := r.store
	s.mu.RLock()
	data, ok := s.rosters[gameID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var roster standings.Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	return &roster, nil
}

type HubMemory struct {
	store *memoryStore
}

func (r *HubMemory) CreateMessage(msg *models.Message) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[msg.GameID]; !ok {
		return ErrGameNotFound
	}
	s.nextMsgID++
	msg.ID = s.nextMsgID
	msg.CreatedAt = time.Now()
	s.messages = append(s.messages, *msg)
	return nil
}

func (r *HubMemory) ListMessages(gameID string, limit int) ([]models.Message, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []models.Message
	for i := len(s.messages) - 1; i >= 0 && len(res) < limit; i-- {
		if s.messages[i].GameID == gameID {
			res = append(res, s.messages[i])
		}
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, nil
}
