package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/repository"
	"github.com/ErlanBelekov/dashboard-api/internal/session"
)

// tokenParser is the subset of *session.Signer the gate needs.
type tokenParser interface {
	Parse(raw string) (*session.Claims, error)
}

// AccessGate runs the authorization pipeline shared by every protected
// route: session → user → active flag → permission.
type AccessGate struct {
	tokens   tokenParser
	sessions repository.SessionRepository
	users    repository.UserRepository
	roles    repository.RoleRepository
}

func NewAccessGate(
	tokens tokenParser,
	sessions repository.SessionRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
) *AccessGate {
	return &AccessGate{tokens: tokens, sessions: sessions, users: users, roles: roles}
}

// ResolveSession turns a raw session token into a live session. Any token or
// lookup miss is ErrUnauthenticated; only store failures are returned as-is.
func (g *AccessGate) ResolveSession(ctx context.Context, raw string) (*domain.Session, error) {
	if raw == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := g.tokens.Parse(raw)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	s, err := g.sessions.FindActive(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if s.UserID != claims.UserID {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

// IsActive reports whether the user may act. An unset flag counts as
// active; a missing user does not.
func (g *AccessGate) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := g.findUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return false, nil
		}
		return false, err
	}
	return user.IsActive(), nil
}

// HasPermission checks permission against the user's custom role. No role,
// or a role without the key, denies.
func (g *AccessGate) HasPermission(ctx context.Context, userID, permission string) (bool, error) {
	role, err := g.roles.RoleForUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load role: %w", err)
	}
	return role.Grants(permission), nil
}

// Authorize runs the full pipeline. permission may be empty to skip the
// permission step.
func (g *AccessGate) Authorize(ctx context.Context, raw, permission string) (*domain.Principal, error) {
	s, err := g.ResolveSession(ctx, raw)
	if err != nil {
		return nil, err
	}

	user, err := g.findUser(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}

	if permission != "" {
		ok, err := g.HasPermission(ctx, user.ID, permission)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
	}

	return &domain.Principal{Session: s, User: user}, nil
}

func (g *AccessGate) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
