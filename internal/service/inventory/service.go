package inventory

import (
	"context"
	"fmt"

	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
)

type InventoryService struct {
	inventoryRepo inventory.Repository
}

func NewInventoryService(inventoryRepo inventory.Repository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// Adjust applies a manual correction to a staff member's available-laptop
// count. The repository clamps the result at zero.
func (s *InventoryService) Adjust(ctx context.Context, userID string, delta int) (inventory.StaffInventory, error) {
	if _, err := s.inventoryRepo.AdjustAvailable(ctx, userID, delta); err != nil {
		return inventory.StaffInventory{}, err
	}

	return s.inventoryRepo.GetByUserID(ctx, userID)
}

func (s *InventoryService) List(ctx context.Context) ([]inventory.StaffInventory, error) {
	counters, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff inventory: %w", err)
	}
	return counters, nil
}
