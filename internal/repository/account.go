package repository

import (
	"context"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
)

type AccountRepository interface {
	// FindCredential returns domain.ErrAccountNotFound when the user has no
	// password-based account.
	FindCredential(ctx context.Context, userID string) (*domain.Account, error)
	DeleteByProvider(ctx context.Context, userID string, provider domain.Provider) (int64, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
