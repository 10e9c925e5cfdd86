// Package repository defines the storage-agnostic interfaces behind the
// two out-of-scope external collaborators this game leans on: the auth
// broker's long-term user/session store, and the stats persistence
// collaborator's match-summary store. internal/repository/postgres
// implements them against a real database; internal/repository/memory
// implements them as in-memory fakes for tests.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/harlowdev/imposter-arena/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// StatsRepository is the persistence side of the stats collaborator's
// recordGameEnd. RecordGameEnd must be idempotent on summary.GameID: a
// second call for the same game is a no-op, never an error, since
// forced game ends can race a duplicate call.
type StatsRepository interface {
	RecordGameEnd(ctx context.Context, summary domain.MatchSummary) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Stats   StatsRepository
}
