package application

import (
	"fmt"
	"sync"

	"assassin/internal/models"
	"assassin/internal/repository"
	"assassin/internal/standings"
)

// Sessions keeps one loaded engine per game and serializes every call
// against it.
type Sessions struct {
	mu    sync.Mutex
	repo  repository.Roster
	games map[string]*session
}

type session struct {
	mu     sync.Mutex
	engine *standings.Engine
}

func NewSessions(repo repository.Roster) *Sessions {
	return &Sessions{
		repo:  repo,
		games: make(map[string]*session),
	}
}

func (s *Sessions) get(gameID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.games[gameID]
	if !ok {
		sess = &session{}
		s.games[gameID] = sess
	}
	return sess
}

// load must be called with sess.mu held.
func (s *Sessions) load(gameID string, sess *session) error {
	if sess.engine != nil {
		return nil
	}

	roster, err := s.repo.LoadRoster(gameID)
	if err != nil {
		return err
	}
	if roster == nil {
		sess.engine = standings.New()
		return nil
	}

	engine, err := standings.FromRoster(*roster)
	if err != nil {
		return fmt.Errorf("stored roster for game %s is invalid: %w", gameID, err)
	}
	sess.engine = engine
	return nil
}

// View runs fn against the game's engine without persisting anything.
func (s *Sessions) View(gameID string, fn func(e *standings.Engine) error) error {
	sess := s.get(gameID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(gameID, sess); err != nil {
		return err
	}
	return fn(sess.engine)
}

// ViewGame is View for live games. A finished game can no longer change, so
// its engine is loaded for the call only and not kept in memory.
func (s *Sessions) ViewGame(game *models.Game, fn func(e *standings.Engine) error) error {
	if game.Status != models.GameFinished {
		return s.View(game.ID, fn)
	}
	sess := &session{}
	if err := s.load(game.ID, sess); err != nil {
		return err
	}
	return fn(sess.engine)
}

// Mutate runs fn and saves the resulting roster. On any failure the cached
// engine is dropped and the next call reloads the last saved roster.
func (s *Sessions) Mutate(gameID string, fn func(e *standings.Engine) error) error {
	sess := s.get(gameID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.load(gameID, sess); err != nil {
		return err
	}

	if err := fn(sess.engine); err != nil {
		sess.engine = nil
		return err
	}

	if err := s.repo.SaveRoster(gameID, sess.engine.Snapshot()); err != nil {
		sess.engine = nil
		return fmt.Errorf("failed to persist roster: %w", err)
	}
	return nil
}

func (s *Sessions) Forget(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
}

func (s *Sessions) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}
