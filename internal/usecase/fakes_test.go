package usecase_test

import (
	"context"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/email"
)

// ---- fakes ----

type fakeUserRepo struct {
	findByID      func(ctx context.Context, id string) (*domain.User, error)
	findByEmail   func(ctx context.Context, email string) (*domain.User, error)
	updateName    func(ctx context.Context, id, name string) (*domain.User, error)
	listWithRoles func(ctx context.Context) ([]*domain.User, error)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) UpdateName(ctx context.Context, id, name string) (*domain.User, error) {
	return r.updateName(ctx, id, name)
}

func (r *fakeUserRepo) ListWithRoles(ctx context.Context) ([]*domain.User, error) {
	return r.listWithRoles(ctx)
}

type fakeRoleRepo struct {
	roleForUser func(ctx context.Context, userID string) (*domain.CustomRole, error)
}

func (r *fakeRoleRepo) RoleForUser(ctx context.Context, userID string) (*domain.CustomRole, error) {
	return r.roleForUser(ctx, userID)
}

type fakeSessionRepo struct {
	create           func(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error)
	findActive       func(ctx context.Context, id string) (*domain.Session, error)
	deleteOne        func(ctx context.Context, id string) error
	deleteAllForUser func(ctx context.Context, userID string) (int64, error)
	deleteExpired    func(ctx context.Context) (int64, error)
}

func (r *fakeSessionRepo) Create(ctx context.Context, userID string, expiresAt time.Time) (*domain.Session, error) {
	return r.create(ctx, userID, expiresAt)
}

func (r *fakeSessionRepo) FindActive(ctx context.Context, id string) (*domain.Session, error) {
	return r.findActive(ctx, id)
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	return r.deleteOne(ctx, id)
}

func (r *fakeSessionRepo) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	return r.deleteAllForUser(ctx, userID)
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return r.deleteExpired(ctx)
}

type fakeAccountRepo struct {
	findCredential   func(ctx context.Context, userID string) (*domain.Account, error)
	deleteByProvider func(ctx context.Context, userID string, provider domain.Provider) (int64, error)
	updatePassword   func(ctx context.Context, userID, passwordHash string) error
}

func (r *fakeAccountRepo) FindCredential(ctx context.Context, userID string) (*domain.Account, error) {
	return r.findCredential(ctx, userID)
}

func (r *fakeAccountRepo) DeleteByProvider(ctx context.Context, userID string, provider domain.Provider) (int64, error) {
	return r.deleteByProvider(ctx, userID, provider)
}

func (r *fakeAccountRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.updatePassword(ctx, userID, passwordHash)
}

type fakeTokenRepo struct {
	create        func(ctx context.Context, identifier, token string, expiresAt time.Time) error
	find          func(ctx context.Context, token string) (*domain.VerificationToken, error)
	consume       func(ctx context.Context, token string) (bool, error)
	deleteExpired func(ctx context.Context) (int64, error)
}

func (r *fakeTokenRepo) Create(ctx context.Context, identifier, token string, expiresAt time.Time) error {
	return r.create(ctx, identifier, token, expiresAt)
}

func (r *fakeTokenRepo) Find(ctx context.Context, token string) (*domain.VerificationToken, error) {
	return r.find(ctx, token)
}

func (r *fakeTokenRepo) Consume(ctx context.Context, token string) (bool, error) {
	return r.consume(ctx, token)
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return r.deleteExpired(ctx)
}

type fakeStatusRepo struct {
	listOrdered func(ctx context.Context) ([]*domain.Status, error)
}

func (r *fakeStatusRepo) ListOrdered(ctx context.Context) ([]*domain.Status, error) {
	return r.listOrdered(ctx)
}

type fakeEmailSender struct {
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg email.Message) error {
	return s.send(ctx, msg)
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }
