package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type VerificationTokenRepository struct {
	db DBTX
}

func NewVerificationTokenRepository(db DBTX) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

func (r *VerificationTokenRepository) Create(ctx context.Context, identifier, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO verification_tokens (identifier, token, expires_at) VALUES ($1, $2, $3)`,
		identifier, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("create verification token: %w", err)
	}
	return nil
}

func (r *VerificationTokenRepository) Find(ctx context.Context, token string) (*domain.VerificationToken, error) {
	query := `
		SELECT identifier, token, expires_at, created_at
		FROM verification_tokens
		WHERE token = $1`

	var t domain.VerificationToken
	err := r.db.QueryRow(ctx, query, token).Scan(&t.Identifier, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find verification token: %w", err)
	}
	return &t, nil
}

// Consume deletes the token; only the caller that actually removed the row
// gets true, so concurrent redemptions cannot both succeed.
func (r *VerificationTokenRepository) Consume(ctx context.Context, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("consume verification token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *VerificationTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
