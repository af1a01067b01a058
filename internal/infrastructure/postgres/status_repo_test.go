package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/infrastructure/postgres"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRepository_ListOrdered(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStatusRepository(mock)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "name", "color", "order", "created_at"}).
		AddRow("s-1", "À faire", "#6b7280", 0, now).
		AddRow("s-2", "En cours", "#3b82f6", 1, now)
	mock.ExpectQuery(`ORDER BY "order" ASC`).WillReturnRows(rows)

	statuses, err := repo.ListOrdered(context.Background())

	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "À faire", statuses[0].Name)
	assert.Equal(t, 1, statuses[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_ListOrdered_EmptyIsNonNil(t *testing.T) {
	mock := newMock(t)
	repo := postgres.NewStatusRepository(mock)

	mock.ExpectQuery(`FROM statuses`).WillReturnRows(pgxmock.NewRows([]string{"id", "name", "color", "order", "created_at"}))

	statuses, err := repo.ListOrdered(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, statuses)
	assert.Empty(t, statuses)
}
