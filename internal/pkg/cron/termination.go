package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jfraser77/hrops-backend/internal/domain/termination"
)

type TerminationJobs struct {
	terminationSvc termination.Service
	interval       time.Duration
}

func NewTerminationJobs(terminationSvc termination.Service, interval time.Duration) *TerminationJobs {
	return &TerminationJobs{
		terminationSvc: terminationSvc,
		interval:       interval,
	}
}

func (j *TerminationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("termination_overdue_sweep", j.interval, j.RunOverdueSweep)
}

func (j *TerminationJobs) RunOverdueSweep(ctx context.Context) error {
	examined, err := j.terminationSvc.SweepOverdue(ctx)
	if err != nil {
		return fmt.Errorf("overdue sweep failed: %w", err)
	}

	slog.Info("Cron: overdue sweep completed", "examined", examined)
	return nil
}
