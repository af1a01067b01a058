package usecase_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/email"
	"github.com/ErlanBelekov/dashboard-api/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

const (
	testBaseURL  = "http://localhost:3000"
	testRawToken = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func sha(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

type resetDeps struct {
	users    *fakeUserRepo
	accounts *fakeAccountRepo
	tokens   *fakeTokenRepo
	sessions *fakeSessionRepo
	sender   *fakeEmailSender
}

// newResetDeps wires a store holding testUser with a credential account and
// one unexpired token for testRawToken.
func newResetDeps(t *testing.T) *resetDeps {
	t.Helper()
	account := credentialFor(t, testPassword)
	stored := &domain.VerificationToken{
		Identifier: testUser.Email,
		Token:      sha(testRawToken),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	return &resetDeps{
		users: &fakeUserRepo{
			findByEmail: func(_ context.Context, email string) (*domain.User, error) {
				if email != testUser.Email {
					return nil, domain.ErrUserNotFound
				}
				return testUser, nil
			},
		},
		accounts: &fakeAccountRepo{
			findCredential: func(_ context.Context, _ string) (*domain.Account, error) {
				return account, nil
			},
			updatePassword: func(_ context.Context, _, _ string) error { return nil },
		},
		tokens: &fakeTokenRepo{
			create: func(_ context.Context, _, _ string, _ time.Time) error { return nil },
			find: func(_ context.Context, token string) (*domain.VerificationToken, error) {
				if token != stored.Token {
					return nil, domain.ErrTokenNotFound
				}
				return stored, nil
			},
			consume: func(_ context.Context, _ string) (bool, error) { return true, nil },
		},
		sessions: &fakeSessionRepo{
			deleteAllForUser: func(_ context.Context, _ string) (int64, error) { return 1, nil },
		},
		sender: &fakeEmailSender{
			send: func(_ context.Context, _ email.Message) error { return nil },
		},
	}
}

func (d *resetDeps) usecase() *usecase.PasswordResetUsecase {
	return usecase.NewPasswordResetUsecase(d.users, d.accounts, d.tokens, d.sessions, d.sender, testBaseURL, time.Hour)
}

// ---- RequestReset ----

func TestRequestReset_StoresHashOfEmailedToken(t *testing.T) {
	var capturedHash, capturedIdentifier string
	var captured email.Message

	deps := newResetDeps(t)
	deps.tokens.create = func(_ context.Context, identifier, token string, _ time.Time) error {
		capturedIdentifier, capturedHash = identifier, token
		return nil
	}
	deps.sender.send = func(_ context.Context, msg email.Message) error {
		captured = msg
		return nil
	}

	if err := deps.usecase().RequestReset(context.Background(), testUser.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := strings.Index(captured.HTML, testBaseURL+"/reset-password?token=")
	if idx == -1 {
		t.Fatalf("email body does not contain reset link: %s", captured.HTML)
	}
	rest := captured.HTML[idx+len(testBaseURL+"/reset-password?token="):]
	rawToken := strings.SplitN(rest, `"`, 2)[0]

	if capturedHash != sha(rawToken) {
		t.Errorf("stored hash %q != SHA-256 of emailed token", capturedHash)
	}
	if capturedIdentifier != testUser.Email {
		t.Errorf("identifier = %q, want %q", capturedIdentifier, testUser.Email)
	}
	if captured.To != testUser.Email || captured.Tag != "password_reset" {
		t.Errorf("message = %+v", captured)
	}
}

func TestRequestReset_UnknownEmail_IsSilent(t *testing.T) {
	deps := newResetDeps(t)
	deps.sender.send = func(_ context.Context, _ email.Message) error {
		t.Fatal("no email must be sent for an unknown address")
		return nil
	}

	if err := deps.usecase().RequestReset(context.Background(), "nobody@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequestReset_OAuthOnlyUser_IsSilent(t *testing.T) {
	deps := newResetDeps(t)
	deps.accounts.findCredential = func(_ context.Context, _ string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}
	deps.tokens.create = func(_ context.Context, _, _ string, _ time.Time) error {
		t.Fatal("no token must be stored without a credential account")
		return nil
	}

	if err := deps.usecase().RequestReset(context.Background(), testUser.Email); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequestReset_EmailError_Propagates(t *testing.T) {
	sendErr := errors.New("provider unavailable")
	deps := newResetDeps(t)
	deps.sender.send = func(_ context.Context, _ email.Message) error { return sendErr }

	err := deps.usecase().RequestReset(context.Background(), testUser.Email)
	if !errors.Is(err, sendErr) {
		t.Errorf("want wrapped sendErr, got %v", err)
	}
}

// ---- Validate ----

func TestValidate_ValidToken_ReturnsIdentifier(t *testing.T) {
	got, err := newResetDeps(t).usecase().Validate(context.Background(), testRawToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != testUser.Email {
		t.Errorf("identifier = %q, want %q", got, testUser.Email)
	}
}

func TestValidate_DoesNotConsume(t *testing.T) {
	deps := newResetDeps(t)
	deps.tokens.consume = func(_ context.Context, _ string) (bool, error) {
		t.Fatal("validate must not consume a live token")
		return false, nil
	}

	if _, err := deps.usecase().Validate(context.Background(), testRawToken); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownToken(t *testing.T) {
	_, err := newResetDeps(t).usecase().Validate(context.Background(), "bogus")
	if !errors.Is(err, domain.ErrTokenNotFound) {
		t.Errorf("want ErrTokenNotFound, got %v", err)
	}
}

func TestValidate_ExpiredToken_IsDeleted(t *testing.T) {
	var consumed string
	deps := newResetDeps(t)
	deps.tokens.find = func(_ context.Context, token string) (*domain.VerificationToken, error) {
		return &domain.VerificationToken{Identifier: testUser.Email, Token: token, ExpiresAt: time.Now().Add(-time.Minute)}, nil
	}
	deps.tokens.consume = func(_ context.Context, token string) (bool, error) {
		consumed = token
		return true, nil
	}

	_, err := deps.usecase().Validate(context.Background(), testRawToken)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
	if consumed != sha(testRawToken) {
		t.Errorf("consumed %q, want hash of raw token", consumed)
	}
}

func TestValidate_NoCredentialAccount(t *testing.T) {
	deps := newResetDeps(t)
	deps.accounts.findCredential = func(_ context.Context, _ string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}

	_, err := deps.usecase().Validate(context.Background(), testRawToken)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("want ErrAccountNotFound, got %v", err)
	}
}

func TestValidate_UserGone_IsAccountNotFound(t *testing.T) {
	deps := newResetDeps(t)
	deps.users.findByEmail = func(_ context.Context, _ string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}

	_, err := deps.usecase().Validate(context.Background(), testRawToken)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("want ErrAccountNotFound, got %v", err)
	}
}

// ---- Reset ----

func TestReset_UpdatesPasswordAndRevokesSessions(t *testing.T) {
	const newPassword = "a-much-better-password"
	var storedHash, revokedFor string

	deps := newResetDeps(t)
	deps.accounts.updatePassword = func(_ context.Context, _, hash string) error {
		storedHash = hash
		return nil
	}
	deps.sessions.deleteAllForUser = func(_ context.Context, userID string) (int64, error) {
		revokedFor = userID
		return 3, nil
	}

	if err := deps.usecase().Reset(context.Background(), testRawToken, newPassword); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(newPassword)); err != nil {
		t.Errorf("stored hash does not match new password: %v", err)
	}
	if revokedFor != testUser.ID {
		t.Errorf("sessions revoked for %q, want %q", revokedFor, testUser.ID)
	}
}

func TestReset_ShortPassword(t *testing.T) {
	deps := newResetDeps(t)
	deps.tokens.find = func(_ context.Context, _ string) (*domain.VerificationToken, error) {
		t.Fatal("token must not be looked up for a short password")
		return nil, nil
	}

	err := deps.usecase().Reset(context.Background(), testRawToken, "short")
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Errorf("want ErrPasswordTooShort, got %v", err)
	}
}

func TestReset_TokenRaced_IsNotFound(t *testing.T) {
	deps := newResetDeps(t)
	deps.tokens.consume = func(_ context.Context, _ string) (bool, error) { return false, nil }
	deps.accounts.updatePassword = func(_ context.Context, _, _ string) error {
		t.Fatal("password must not change when the token was already used")
		return nil
	}

	err := deps.usecase().Reset(context.Background(), testRawToken, "long-enough-password")
	if !errors.Is(err, domain.ErrTokenNotFound) {
		t.Errorf("want ErrTokenNotFound, got %v", err)
	}
}

func TestReset_ExpiredToken(t *testing.T) {
	deps := newResetDeps(t)
	deps.tokens.find = func(_ context.Context, token string) (*domain.VerificationToken, error) {
		return &domain.VerificationToken{Identifier: testUser.Email, Token: token, ExpiresAt: time.Now().Add(-time.Second)}, nil
	}

	err := deps.usecase().Reset(context.Background(), testRawToken, "long-enough-password")
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}
