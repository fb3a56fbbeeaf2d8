package inventory

import "context"

// Service is the inventory surface consumed by handlers.
type Service interface {
	Adjust(ctx context.Context, userID string, delta int) (StaffInventory, error)
	List(ctx context.Context) ([]StaffInventory, error)
}
