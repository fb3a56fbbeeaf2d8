package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
	"github.com/jfraser77/hrops-backend/internal/pkg/database"
)

const foreignKeyViolationCode = "23503"

type inventoryRepositoryImpl struct {
	db database.Querier
}

func NewInventoryRepository(db database.Querier) inventory.Repository {
	return &inventoryRepositoryImpl{db: db}
}

func (r *inventoryRepositoryImpl) AdjustAvailable(ctx context.Context, userID string, delta int) (int, error) {
	q := GetQuerier(ctx, r.db)

	// Upsert so the first adjustment for a staff member creates the counter
	// row; GREATEST keeps the count from going negative.
	query := `
		INSERT INTO staff_inventory (user_id, available_laptops, updated_at)
		VALUES ($1, GREATEST($2, 0), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET available_laptops = GREATEST(staff_inventory.available_laptops + $2, 0),
		    updated_at = NOW()
		RETURNING available_laptops
	`

	var updated int
	err := q.QueryRow(ctx, query, userID, delta).Scan(&updated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return 0, inventory.ErrStaffNotFound
		}
		return 0, err
	}

	return updated, nil
}

func (r *inventoryRepositoryImpl) GetByUserID(ctx context.Context, userID string) (inventory.StaffInventory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT si.user_id, si.available_laptops, si.updated_at, u.name
		FROM staff_inventory si
		JOIN users u ON si.user_id = u.id
		WHERE si.user_id = $1
	`

	var si inventory.StaffInventory
	err := q.QueryRow(ctx, query, userID).Scan(
		&si.UserID, &si.AvailableLaptops, &si.UpdatedAt, &si.UserName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.StaffInventory{}, inventory.ErrStaffNotFound
		}
		return inventory.StaffInventory{}, err
	}

	return si, nil
}

func (r *inventoryRepositoryImpl) List(ctx context.Context) ([]inventory.StaffInventory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT si.user_id, si.available_laptops, si.updated_at, u.name
		FROM staff_inventory si
		JOIN users u ON si.user_id = u.id
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []inventory.StaffInventory
	for rows.Next() {
		var si inventory.StaffInventory
		if err := rows.Scan(&si.UserID, &si.AvailableLaptops, &si.UpdatedAt, &si.UserName); err != nil {
			return nil, err
		}
		counters = append(counters, si)
	}

	return counters, rows.Err()
}
