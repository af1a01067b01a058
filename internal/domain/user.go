package domain

import (
	"errors"
	"slices"
	"time"
)

var ErrNameRequired = errors.New("name is required")

// SystemRole is the coarse role stored on the user row. It is independent
// of the admin-assigned CustomRole.
type SystemRole string

const (
	SystemRoleUser  SystemRole = "USER"
	SystemRoleAdmin SystemRole = "ADMIN"
)

// Permission keys checked against a CustomRole.
const (
	PermManageRoles = "users.manage_roles"
)

type User struct {
	ID    string
	Name  string
	Email string
	Image *string

	// Active is nil when the column was never written; nil counts as active.
	Active *bool
	Role   *SystemRole

	// CustomRole is nil when no role has been assigned.
	CustomRole *CustomRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsActive() bool {
	return u.Active == nil || *u.Active
}

func (u *User) SystemRole() SystemRole {
	if u.Role == nil || *u.Role == "" {
		return SystemRoleUser
	}
	return *u.Role
}

// CustomRole is a named bundle of permission keys.
type CustomRole struct {
	ID          string
	Name        string
	Permissions []string
}

func (r *CustomRole) Grants(permission string) bool {
	if r == nil || permission == "" {
		return false
	}
	return slices.Contains(r.Permissions, permission)
}

// Principal is the outcome of a successful authorization: the live session
// and the active user that owns it.
type Principal struct {
	Session *Session
	User    *User
}
