package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/email"
	"github.com/ErlanBelekov/dashboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultResetTokenTTL = time.Hour
	minPasswordLength    = 8
)

type PasswordResetUsecase struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	tokens   repository.VerificationTokenRepository
	sessions repository.SessionRepository
	email    email.Sender
	baseURL  string
	tokenTTL time.Duration
	now      func() time.Time
}

func NewPasswordResetUsecase(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	tokens repository.VerificationTokenRepository,
	sessions repository.SessionRepository,
	sender email.Sender,
	baseURL string,
	tokenTTL time.Duration,
) *PasswordResetUsecase {
	if tokenTTL <= 0 {
		tokenTTL = defaultResetTokenTTL
	}
	return &PasswordResetUsecase{
		users:    users,
		accounts: accounts,
		tokens:   tokens,
		sessions: sessions,
		email:    sender,
		baseURL:  baseURL,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func hashToken(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// RequestReset emails a reset link when the address belongs to a credential
// account. Unknown addresses return nil so callers cannot probe for users.
func (u *PasswordResetUsecase) RequestReset(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	if _, err := u.accounts.FindCredential(ctx, user.ID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("find credential: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	rawToken := hex.EncodeToString(raw)

	if err := u.tokens.Create(ctx, user.Email, hashToken(rawToken), u.now().Add(u.tokenTTL)); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := u.baseURL + "/reset-password?token=" + url.QueryEscape(rawToken)
	msg := email.Message{
		To:      user.Email,
		Subject: "Réinitialisation de votre mot de passe",
		HTML: fmt.Sprintf(
			`<p>Cliquez sur le lien ci-dessous pour choisir un nouveau mot de passe :</p><p><a href="%s">%s</a></p>`,
			link, link,
		),
		Tag: "password_reset",
	}
	if err := u.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("send reset link: %w", err)
	}
	return nil
}

// Validate checks a raw reset token without consuming it and returns the
// email it was issued for. Expired tokens are deleted on sight.
func (u *PasswordResetUsecase) Validate(ctx context.Context, rawToken string) (string, error) {
	t, err := u.tokens.Find(ctx, hashToken(rawToken))
	if err != nil {
		return "", err
	}

	if t.Expired(u.now()) {
		if _, err := u.tokens.Consume(ctx, t.Token); err != nil {
			return "", err
		}
		return "", domain.ErrTokenExpired
	}

	if _, err := u.credentialUser(ctx, t.Identifier); err != nil {
		return "", err
	}
	return t.Identifier, nil
}

// Reset consumes the token, stores the new password hash and signs the
// user out everywhere.
func (u *PasswordResetUsecase) Reset(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	identifier, err := u.Validate(ctx, rawToken)
	if err != nil {
		return err
	}

	user, err := u.credentialUser(ctx, identifier)
	if err != nil {
		return err
	}

	consumed, err := u.tokens.Consume(ctx, hashToken(rawToken))
	if err != nil {
		return err
	}
	if !consumed {
		return domain.ErrTokenNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.accounts.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	if _, err := u.sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return err
	}
	return nil
}

func (u *PasswordResetUsecase) credentialUser(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if _, err := u.accounts.FindCredential(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}
