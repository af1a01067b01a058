package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInactiveUser     = errors.New("user account is inactive")
	ErrForbidden        = errors.New("permission denied")
	ErrSessionNotFound  = errors.New("session not found or expired")
	ErrInvalidPassword  = errors.New("invalid email or password")
	ErrTokenNotFound    = errors.New("verification token not found")
	ErrTokenExpired     = errors.New("verification token expired")
	ErrAccountNotFound  = errors.New("no credential account for identifier")
	ErrPasswordTooShort = errors.New("password is too short")
)

// Session is a server-side login record. The signed token handed to the
// client only points at it; deleting the row revokes the token.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Provider identifies how an Account signs in.
type Provider string

const (
	ProviderCredential Provider = "credential"
	ProviderGoogle     Provider = "google"
)

type Account struct {
	ID           string
	UserID       string
	Provider     Provider
	AccountID    string  // external id for OAuth providers, user id for credential
	PasswordHash *string // credential accounts only
	CreatedAt    time.Time
}

// VerificationToken is a single-use, time-bound secret addressed to an
// identifier (an email address for password resets).
type VerificationToken struct {
	Identifier string
	Token      string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func (t *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
