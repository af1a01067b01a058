package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/repository"
)

type UserUsecase struct {
	users    repository.UserRepository
	statuses repository.StatusRepository
}

func NewUserUsecase(users repository.UserRepository, statuses repository.StatusRepository) *UserUsecase {
	return &UserUsecase{users: users, statuses: statuses}
}

func (u *UserUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}

// UpdateProfile trims the name and rejects blanks before touching the store.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	user, err := u.users.UpdateName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.ListWithRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) ListStatuses(ctx context.Context) ([]*domain.Status, error) {
	statuses, err := u.statuses.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}
