package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindCredential(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
		SELECT id, user_id, provider, account_id, password_hash, created_at
		FROM accounts
		WHERE user_id = $1 AND provider = $2
		LIMIT 1`

	var a domain.Account
	err := r.db.QueryRow(ctx, query, userID, domain.ProviderCredential).Scan(
		&a.ID, &a.UserID, &a.Provider, &a.AccountID, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find credential account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) DeleteByProvider(ctx context.Context, userID string, provider domain.Provider) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM accounts WHERE user_id = $1 AND provider = $2`,
		userID, provider,
	)
	if err != nil {
		return 0, fmt.Errorf("delete %s accounts: %w", provider, err)
	}
	return tag.RowsAffected(), nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET password_hash = $3 WHERE user_id = $1 AND provider = $2`,
		userID, domain.ProviderCredential, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
