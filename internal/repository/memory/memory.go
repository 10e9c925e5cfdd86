// Package memory implements repository.UserRepository,
// repository.SessionRepository, and repository.StatsRepository as
// in-memory fakes, used in place of the Postgres adapter wherever tests
// need a repository but not a live database. Persistence is an
// out-of-scope external collaborator here, so no test in this repo
// depends on exercising a real Postgres instance.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/harlowdev/imposter-arena/internal/domain"
)

type Users struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.User
}

func NewUsers() *Users {
	return &Users{byID: make(map[uuid.UUID]*domain.User)}
}

func (u *Users) Create(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.byID {
		if existing.DisplayName == user.DisplayName {
			return domain.ErrDisplayNameTaken
		}
	}
	cp := *user
	u.byID[user.ID] = &cp
	return nil
}

func (u *Users) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	user, ok := u.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (u *Users) GetByDisplayName(_ context.Context, displayName string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, user := range u.byID {
		if user.DisplayName == displayName {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type Sessions struct {
	mu       sync.RWMutex
	byUserID map[uuid.UUID]*domain.UserSession
}

func NewSessions() *Sessions {
	return &Sessions{byUserID: make(map[uuid.UUID]*domain.UserSession)}
}

func (s *Sessions) Create(_ context.Context, session *domain.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.byUserID[session.UserID] = &cp
	return nil
}

func (s *Sessions) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.UserSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byUserID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *Sessions) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, session := range s.byUserID {
		if session.ID == id {
			delete(s.byUserID, userID)
			return nil
		}
	}
	return nil
}

func (s *Sessions) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUserID, userID)
	return nil
}

// Stats is the in-memory StatsRepository fake, deduplicated by GameID
// exactly like the Postgres adapter's unique-index-plus-DoNothing insert.
type Stats struct {
	mu       sync.Mutex
	recorded map[string]domain.MatchSummary
}

func NewStats() *Stats {
	return &Stats{recorded: make(map[string]domain.MatchSummary)}
}

func (s *Stats) RecordGameEnd(_ context.Context, summary domain.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recorded[summary.GameID]; exists {
		return nil
	}
	s.recorded[summary.GameID] = summary
	return nil
}

func (s *Stats) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recorded)
}

func (s *Stats) Get(gameID string) (domain.MatchSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.recorded[gameID]
	return summary, ok
}
