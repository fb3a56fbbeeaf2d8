package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepositoryAdjustAvailable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInventoryRepository(mock)

	mock.ExpectQuery("INSERT INTO staff_inventory").
		WithArgs("it-1", 1).
		WillReturnRows(pgxmock.NewRows([]string{"available_laptops"}).AddRow(3))

	updated, err := repo.AdjustAvailable(context.Background(), "it-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepositoryAdjustAvailableUnknownStaff(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewInventoryRepository(mock)

	mock.ExpectQuery("INSERT INTO staff_inventory").
		WithArgs("ghost", 1).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	_, err = repo.AdjustAvailable(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, inventory.ErrStaffNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
