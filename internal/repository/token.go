package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
)

type VerificationTokenRepository interface {
	Create(ctx context.Context, identifier, token string, expiresAt time.Time) error
	// Find returns domain.ErrTokenNotFound when no row matches. Expiry is
	// left to the caller so that expired tokens can be told apart.
	Find(ctx context.Context, token string) (*domain.VerificationToken, error)
	// Consume deletes the token and reports whether this call removed it.
	Consume(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
