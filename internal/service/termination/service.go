package termination

import (
	"context"
	"fmt"
	"time"

	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
	"github.com/jfraser77/hrops-backend/internal/domain/termination"
	"github.com/jfraser77/hrops-backend/internal/domain/user"
	"github.com/jfraser77/hrops-backend/internal/pkg/email"
	"github.com/jfraser77/hrops-backend/internal/pkg/validator"
)

// TxRunner executes fn within a single database transaction. Repository calls
// made inside fn join the transaction through the context.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TerminationService struct {
	tx              TxRunner
	terminationRepo termination.Repository
	userRepo        user.Repository
	inventoryRepo   inventory.Repository
	emailService    email.EmailService
	hrEmails        []string
	now             func() time.Time
}

func NewTerminationService(
	tx TxRunner,
	terminationRepo termination.Repository,
	userRepo user.Repository,
	inventoryRepo inventory.Repository,
	emailService email.EmailService,
	hrEmails []string,
) *TerminationService {
	return &TerminationService{
		tx:              tx,
		terminationRepo: terminationRepo,
		userRepo:        userRepo,
		inventoryRepo:   inventoryRepo,
		emailService:    emailService,
		hrEmails:        hrEmails,
		now:             time.Now,
	}
}

func (s *TerminationService) Create(ctx context.Context, req termination.CreateTerminationRequest) (termination.Termination, error) {
	date, ok := validator.IsValidDate(req.TerminationDate)
	if !ok {
		return termination.Termination{}, validator.ValidationErrors{{
			Field:   "termination_date",
			Message: "termination_date must be in YYYY-MM-DD format",
		}}
	}

	// An empty or absent checklist falls back to the default template, so a
	// record never starts without one.
	checklist := req.Checklist
	if len(checklist) == 0 {
		checklist = termination.DefaultChecklist()
	}

	disposition := termination.DispositionPendingAssessment
	if req.EquipmentDisposition != nil {
		disposition = termination.EquipmentDisposition(*req.EquipmentDisposition)
	}

	t := termination.Termination{
		EmployeeName:         req.EmployeeName,
		EmployeeEmail:        req.EmployeeEmail,
		JobTitle:             req.JobTitle,
		Department:           req.Department,
		TerminationDate:      date,
		TerminationReason:    req.TerminationReason,
		InitiatedBy:          req.InitiatedBy,
		Status:               termination.StatusPending,
		EquipmentDisposition: disposition,
		Checklist:            checklist,
	}

	created, err := s.terminationRepo.Create(ctx, t)
	if err != nil {
		return termination.Termination{}, fmt.Errorf("failed to create termination: %w", err)
	}

	created.ComputeDerived(s.now())
	return created, nil
}

func (s *TerminationService) Get(ctx context.Context, id int64) (termination.Termination, error) {
	t, err := s.terminationRepo.GetByID(ctx, id)
	if err != nil {
		return termination.Termination{}, err
	}

	t.ComputeDerived(s.now())
	return t, nil
}

func (s *TerminationService) Update(ctx context.Context, id int64, req termination.UpdateTerminationRequest) (termination.Termination, error) {
	fields := req.Fields()
	if !fields.IsEmpty() {
		if err := s.terminationRepo.Update(ctx, id, fields); err != nil {
			return termination.Termination{}, err
		}
	}

	return s.Get(ctx, id)
}

func (s *TerminationService) Delete(ctx context.Context, id int64) error {
	return s.terminationRepo.Delete(ctx, id)
}

func (s *TerminationService) List(ctx context.Context, filter termination.ListFilter) ([]termination.Termination, error) {
	now := s.now()

	terminations, err := s.terminationRepo.List(ctx, filter, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminations: %w", err)
	}

	// Derived fields are always recomputed from the termination date, so list
	// views are time-accurate even if the sweep has not run recently.
	for i := range terminations {
		terminations[i].ComputeDerived(now)
	}

	return terminations, nil
}
