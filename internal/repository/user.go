package repository

import (
	"context"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
)

type UserRepository interface {
	// FindByID returns the user with its custom role (if any) loaded.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
	// ListWithRoles returns every user ordered by name ascending.
	ListWithRoles(ctx context.Context) ([]*domain.User, error)
}

type RoleRepository interface {
	// RoleForUser returns nil, nil when the user has no custom role.
	RoleForUser(ctx context.Context, userID string) (*domain.CustomRole, error)
}
