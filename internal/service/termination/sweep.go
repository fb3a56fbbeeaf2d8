package termination

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jfraser77/hrops-backend/internal/domain/termination"
	"github.com/jfraser77/hrops-backend/internal/pkg/email"
)

// SweepOverdue scans pending terminations past the 30-day threshold, promotes
// them to overdue, and notifies the employee and HR. Promotion is a
// conditional update keyed on status, so overlapping sweep runs cannot
// double-promote or double-notify a record. Returns the number of records
// examined.
func (s *TerminationService) SweepOverdue(ctx context.Context) (int, error) {
	runID := uuid.NewString()
	now := s.now()
	cutoff := now.AddDate(0, 0, -termination.OverdueThresholdDays)

	candidates, err := s.terminationRepo.ListOverdueCandidates(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue candidates: %w", err)
	}

	slog.Info("Overdue sweep started", "run_id", runID, "candidates", len(candidates))

	promotedCount := 0
	for _, t := range candidates {
		promoted, err := s.terminationRepo.PromoteToOverdue(ctx, t.ID)
		if err != nil {
			slog.Error("Failed to promote termination to overdue",
				"run_id", runID, "termination_id", t.ID, "error", err)
			continue
		}
		if !promoted {
			// No longer pending: another run got here first, or equipment
			// came back in the meantime.
			continue
		}
		promotedCount++

		// Notifications are best-effort. The record is overdue whether or not
		// anyone was told, so failures are logged per recipient group and the
		// promotion stands.
		data := email.OverdueEmailData{
			EmployeeName:    t.EmployeeName,
			TerminationDate: t.TerminationDate.Format("2006-01-02"),
			DaysSince:       t.DaysSince(now),
		}

		if err := s.emailService.SendOverdueReminder(t.EmployeeEmail, s.hrEmails, data); err != nil {
			slog.Error("Failed to send overdue reminder to employee",
				"run_id", runID, "termination_id", t.ID, "to", t.EmployeeEmail, "error", err)
		}
		if err := s.emailService.SendOverdueAlert(s.hrEmails, data); err != nil {
			slog.Error("Failed to send overdue alert to HR",
				"run_id", runID, "termination_id", t.ID, "error", err)
		}
	}

	slog.Info("Overdue sweep finished",
		"run_id", runID, "examined", len(candidates), "promoted", promotedCount)

	return len(candidates), nil
}
