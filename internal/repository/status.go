package repository

import (
	"context"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
)

type StatusRepository interface {
	// ListOrdered returns all statuses by "order" ascending.
	ListOrdered(ctx context.Context) ([]*domain.Status, error)
}
