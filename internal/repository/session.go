package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error)
	// FindActive returns domain.ErrSessionNotFound for unknown or expired sessions.
	FindActive(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
