package termination

import "context"

// Service is the termination lifecycle: record CRUD, checklist mutations,
// the equipment-return and archival transitions, and the overdue sweep.
type Service interface {
	Create(ctx context.Context, req CreateTerminationRequest) (Termination, error)
	Get(ctx context.Context, id int64) (Termination, error)
	Update(ctx context.Context, id int64, req UpdateTerminationRequest) (Termination, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]Termination, error)

	SetItemCompletion(ctx context.Context, id int64, itemID string, completed bool, actor string) (Termination, error)
	BulkSetChecklist(ctx context.Context, id int64, category *string, completed bool, actor string) (Termination, error)
	AddChecklistItem(ctx context.Context, id int64, category, description string) (Termination, error)
	RemoveChecklistItem(ctx context.Context, id int64, itemID string) (Termination, error)

	MarkEquipmentReturned(ctx context.Context, id int64, req MarkReturnedRequest) (Termination, error)
	Archive(ctx context.Context, id int64) (Termination, error)

	// SweepOverdue promotes stale pending terminations to overdue and fires
	// notifications. Returns the number of records examined.
	SweepOverdue(ctx context.Context) (int, error)
}
