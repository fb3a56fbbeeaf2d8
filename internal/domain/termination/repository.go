package termination

import (
	"context"
	"time"
)

// ListFilter selects which slice of the terminations table a list query
// returns. The zero value is the default active view (everything except
// archived records).
type ListFilter string

const (
	FilterActive   ListFilter = ""
	FilterOverdue  ListFilter = "overdue"
	FilterArchived ListFilter = "archived"
)

func IsValidListFilter(f string) bool {
	switch ListFilter(f) {
	case FilterActive, FilterOverdue, FilterArchived:
		return true
	}
	return false
}

// UpdateFields carries a partial update: only non-nil fields are written.
type UpdateFields struct {
	EmployeeName         *string
	EmployeeEmail        *string
	JobTitle             *string
	Department           *string
	TerminationDate      *time.Time
	TerminationReason    *string
	InitiatedBy          *string
	Status               *Status
	TrackingNumber       *string
	EquipmentDisposition *EquipmentDisposition
	CompletedByUserID    *string
	Checklist            *Checklist
	IsOverdue            *bool
}

// IsEmpty reports whether the update touches nothing.
func (u UpdateFields) IsEmpty() bool {
	return u.EmployeeName == nil && u.EmployeeEmail == nil && u.JobTitle == nil &&
		u.Department == nil && u.TerminationDate == nil && u.TerminationReason == nil &&
		u.InitiatedBy == nil && u.Status == nil && u.TrackingNumber == nil &&
		u.EquipmentDisposition == nil && u.CompletedByUserID == nil &&
		u.Checklist == nil && u.IsOverdue == nil
}

// Repository - interface for the terminations table
type Repository interface {
	Create(ctx context.Context, t Termination) (Termination, error)
	GetByID(ctx context.Context, id int64) (Termination, error)
	Update(ctx context.Context, id int64, fields UpdateFields) error
	UpdateChecklist(ctx context.Context, id int64, checklist Checklist) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter, now time.Time) ([]Termination, error)

	// ListOverdueCandidates returns pending records whose termination date is
	// on or before the cutoff.
	ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]Termination, error)

	// PromoteToOverdue conditionally flips a record to overdue, returning
	// false when the record was no longer pending. Concurrent sweeps racing on
	// the same record resolve here: only one caller observes true.
	PromoteToOverdue(ctx context.Context, id int64) (bool, error)
}
