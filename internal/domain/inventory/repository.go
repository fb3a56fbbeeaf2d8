package inventory

import "context"

// Repository - interface for the staff_inventory table
type Repository interface {
	// AdjustAvailable changes a staff member's available-laptop count by
	// delta, clamped at zero, creating the counter row on first use. Returns
	// the updated count.
	AdjustAvailable(ctx context.Context, userID string, delta int) (int, error)
	GetByUserID(ctx context.Context, userID string) (StaffInventory, error)
	List(ctx context.Context) ([]StaffInventory, error)
}
