package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 30 * 24 * time.Hour

type sessionSigner interface {
	Sign(s *domain.Session) (string, error)
}

type consentProvider interface {
	Configured() bool
	ConsentURL(state string) string
}

type AuthUsecase struct {
	users      repository.UserRepository
	accounts   repository.AccountRepository
	sessions   repository.SessionRepository
	signer     sessionSigner
	google     consentProvider
	newState   func() (string, error)
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthUsecase(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	signer sessionSigner,
	google consentProvider,
	newState func() (string, error),
	sessionTTL time.Duration,
) *AuthUsecase {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthUsecase{
		users:      users,
		accounts:   accounts,
		sessions:   sessions,
		signer:     signer,
		google:     google,
		newState:   newState,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

var ErrGoogleNotConfigured = errors.New("google oauth is not configured")

type SignInResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

// SignIn checks a password against the user's credential account and opens
// a session. Unknown emails and wrong passwords are indistinguishable.
func (u *AuthUsecase) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	account, err := u.accounts.FindCredential(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidPassword
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if account.PasswordHash == nil {
		return nil, domain.ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidPassword
	}

	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}

	s, err := u.sessions.Create(ctx, user.ID, u.now().Add(u.sessionTTL))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := u.signer.Sign(s)
	if err != nil {
		return nil, err
	}

	return &SignInResult{Token: token, Session: s, User: user}, nil
}

func (u *AuthUsecase) SignOut(ctx context.Context, sessionID string) error {
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// GoogleConsent returns the authorize URL and the state value the caller
// must persist for the callback.
func (u *AuthUsecase) GoogleConsent() (consentURL, state string, err error) {
	if !u.google.Configured() {
		return "", "", ErrGoogleNotConfigured
	}
	state, err = u.newState()
	if err != nil {
		return "", "", err
	}
	return u.google.ConsentURL(state), state, nil
}

// DisconnectGoogle removes every linked Google account row for the user.
func (u *AuthUsecase) DisconnectGoogle(ctx context.Context, userID string) (int64, error) {
	n, err := u.accounts.DeleteByProvider(ctx, userID, domain.ProviderGoogle)
	if err != nil {
		return 0, fmt.Errorf("disconnect google: %w", err)
	}
	return n, nil
}
