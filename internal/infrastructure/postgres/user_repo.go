package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	u.id, u.name, u.email, u.image, u.active, u.role,
	u.created_at, u.updated_at,
	r.id, r.name, r.permissions`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN custom_roles r ON r.id = u.custom_role_id
		WHERE u.id = $1`

	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN custom_roles r ON r.id = u.custom_role_id
		WHERE lower(u.email) = lower($1)`

	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) UpdateName(ctx context.Context, id, name string) (*domain.User, error) {
	query := `
		WITH u AS (
			UPDATE users SET name = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		LEFT JOIN custom_roles r ON r.id = u.custom_role_id`

	return scanUser(r.db.QueryRow(ctx, query, id, name))
}

func (r *UserRepository) ListWithRoles(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN custom_roles r ON r.id = u.custom_role_id
		ORDER BY u.name ASC, u.id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// RoleForUser implements repository.RoleRepository on top of the users table.
func (r *UserRepository) RoleForUser(ctx context.Context, userID string) (*domain.CustomRole, error) {
	query := `
		SELECT r.id, r.name, r.permissions
		FROM users u
		JOIN custom_roles r ON r.id = u.custom_role_id
		WHERE u.id = $1`

	var role domain.CustomRole
	err := r.db.QueryRow(ctx, query, userID).Scan(&role.ID, &role.Name, &role.Permissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("role for user: %w", err)
	}
	return &role, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u           domain.User
		role        *string
		roleID      *string
		roleName    *string
		permissions []string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Image, &u.Active, &role,
		&u.CreatedAt, &u.UpdatedAt,
		&roleID, &roleName, &permissions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if role != nil {
		sr := domain.SystemRole(*role)
		u.Role = &sr
	}
	if roleID != nil {
		u.CustomRole = &domain.CustomRole{
			ID:          *roleID,
			Name:        deref(roleName),
			Permissions: permissions,
		}
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
