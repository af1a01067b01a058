package postgres

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
)

type StatusRepository struct {
	db DBTX
}

func NewStatusRepository(db DBTX) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) ListOrdered(ctx context.Context) ([]*domain.Status, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, color, "order", created_at
		FROM statuses
		ORDER BY "order" ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]*domain.Status, 0)
	for rows.Next() {
		var s domain.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.Order, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}
