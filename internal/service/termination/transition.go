package termination

import (
	"context"
	"fmt"

	"github.com/jfraser77/hrops-backend/internal/domain/termination"
)

// MarkEquipmentReturned moves a record to equipment_returned. The status
// write and the return_to_pool inventory credit happen in one transaction; if
// the inventory adjustment fails the status change rolls back.
func (s *TerminationService) MarkEquipmentReturned(ctx context.Context, id int64, req termination.MarkReturnedRequest) (termination.Termination, error) {
	if err := req.Validate(); err != nil {
		return termination.Termination{}, err
	}

	staff, err := s.userRepo.GetByID(ctx, req.CompletedByUserID)
	if err != nil {
		return termination.Termination{}, err
	}

	disposition := termination.EquipmentDisposition(req.EquipmentDisposition)

	var updated termination.Termination
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := s.terminationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.Status == termination.StatusArchived {
			return termination.ErrAlreadyArchived
		}

		status := termination.StatusEquipmentReturned
		isOverdue := false
		fields := termination.UpdateFields{
			Status:               &status,
			TrackingNumber:       &req.TrackingNumber,
			EquipmentDisposition: &disposition,
			CompletedByUserID:    &req.CompletedByUserID,
			IsOverdue:            &isOverdue,
		}
		if err := s.terminationRepo.Update(ctx, id, fields); err != nil {
			return err
		}

		if disposition == termination.DispositionReturnToPool {
			if _, err := s.inventoryRepo.AdjustAvailable(ctx, req.CompletedByUserID, 1); err != nil {
				return fmt.Errorf("failed to credit returned laptop: %w", err)
			}
		}

		t.Status = status
		t.TrackingNumber = &req.TrackingNumber
		t.EquipmentDisposition = disposition
		t.CompletedByUserID = &req.CompletedByUserID
		t.IsOverdue = false
		updated = t
		return nil
	})
	if err != nil {
		return termination.Termination{}, err
	}

	updated.CompletedByUserName = &staff.Name
	updated.ComputeDerived(s.now())
	return updated, nil
}

// Archive closes out a termination. Eligibility is re-checked here; a failed
// attempt reports every unmet condition so the operator knows what is left.
func (s *TerminationService) Archive(ctx context.Context, id int64) (termination.Termination, error) {
	var updated termination.Termination

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := s.terminationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.Status == termination.StatusArchived {
			return termination.ErrAlreadyArchived
		}

		if blockers := t.ArchiveBlockers(); len(blockers) > 0 {
			return &termination.NotEligibleError{Blockers: blockers}
		}

		status := termination.StatusArchived
		isOverdue := false
		fields := termination.UpdateFields{
			Status:    &status,
			IsOverdue: &isOverdue,
		}
		if err := s.terminationRepo.Update(ctx, id, fields); err != nil {
			return err
		}

		t.Status = status
		t.IsOverdue = false
		updated = t
		return nil
	})
	if err != nil {
		return termination.Termination{}, err
	}

	updated.ComputeDerived(s.now())
	return updated, nil
}
