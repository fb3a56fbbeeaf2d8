package termination

import (
	"context"
	"fmt"

	"github.com/jfraser77/hrops-backend/internal/domain/termination"
)

// Checklist mutations run as a transactional read-modify-write on the owning
// record, so two users editing different items concurrently cannot clobber
// each other with a whole-document replace.

func (s *TerminationService) SetItemCompletion(ctx context.Context, id int64, itemID string, completed bool, actor string) (termination.Termination, error) {
	return s.mutateChecklist(ctx, id, func(t *termination.Termination) error {
		return t.Checklist.SetCompletion(itemID, completed, actor, s.now())
	})
}

func (s *TerminationService) BulkSetChecklist(ctx context.Context, id int64, category *string, completed bool, actor string) (termination.Termination, error) {
	return s.mutateChecklist(ctx, id, func(t *termination.Termination) error {
		if category != nil {
			// A category with no matching items is a no-op, not an error.
			t.Checklist.SetCategoryCompletion(*category, completed, actor, s.now())
		} else {
			t.Checklist.SetAllCompletion(completed, actor, s.now())
		}
		return nil
	})
}

func (s *TerminationService) AddChecklistItem(ctx context.Context, id int64, category, description string) (termination.Termination, error) {
	return s.mutateChecklist(ctx, id, func(t *termination.Termination) error {
		t.Checklist.Add(category, description, s.now())
		return nil
	})
}

func (s *TerminationService) RemoveChecklistItem(ctx context.Context, id int64, itemID string) (termination.Termination, error) {
	return s.mutateChecklist(ctx, id, func(t *termination.Termination) error {
		return t.Checklist.Remove(itemID)
	})
}

func (s *TerminationService) mutateChecklist(ctx context.Context, id int64, mutate func(t *termination.Termination) error) (termination.Termination, error) {
	var updated termination.Termination

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := s.terminationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := mutate(&t); err != nil {
			return err
		}

		if err := s.terminationRepo.UpdateChecklist(ctx, t.ID, t.Checklist); err != nil {
			return fmt.Errorf("failed to update checklist: %w", err)
		}

		updated = t
		return nil
	})
	if err != nil {
		return termination.Termination{}, err
	}

	updated.ComputeDerived(s.now())
	return updated, nil
}
