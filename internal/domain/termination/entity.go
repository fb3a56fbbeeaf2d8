package termination

import (
	"time"
)

// OverdueThresholdDays is the number of days after the termination date before
// an outstanding equipment return is considered overdue.
const OverdueThresholdDays = 30

type Status string

const (
	StatusPending           Status = "pending"
	StatusOverdue           Status = "overdue"
	StatusEquipmentReturned Status = "equipment_returned"
	StatusArchived          Status = "archived"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusOverdue, StatusEquipmentReturned, StatusArchived:
		return true
	}
	return false
}

// EquipmentDisposition is the intended fate of returned hardware.
type EquipmentDisposition string

const (
	DispositionReturnToPool      EquipmentDisposition = "return_to_pool"
	DispositionRetire            EquipmentDisposition = "retire"
	DispositionPendingAssessment EquipmentDisposition = "pending_assessment"
)

func IsValidDisposition(d string) bool {
	switch EquipmentDisposition(d) {
	case DispositionReturnToPool, DispositionRetire, DispositionPendingAssessment:
		return true
	}
	return false
}

// Termination is one employee's offboarding record. The employee fields are a
// snapshot captured at termination time, not a live join against a directory
// record. The checklist is owned by the record and serialized with it.
type Termination struct {
	ID                   int64
	EmployeeName         string
	EmployeeEmail        string
	JobTitle             *string
	Department           *string
	TerminationDate      time.Time
	TerminationReason    *string
	InitiatedBy          *string
	Status               Status
	TrackingNumber       *string
	EquipmentDisposition EquipmentDisposition
	CompletedByUserID    *string
	Checklist            Checklist
	IsOverdue            bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Derived fields, recomputed from TerminationDate on every read. The stored
	// is_overdue flag is only the sweep's bookkeeping of "already notified".
	DaysPassed    int
	DaysRemaining int

	// Join (for responses)
	CompletedByUserName *string
}

// DaysSince returns whole days elapsed since the termination date.
func (t *Termination) DaysSince(now time.Time) int {
	days := int(now.Sub(t.TerminationDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ComputeDerived refreshes DaysPassed, DaysRemaining and IsOverdue from the
// termination date and the current time, so list and detail views stay
// time-accurate even if the sweep has not run recently. Overdue only applies
// while equipment is still outstanding.
func (t *Termination) ComputeDerived(now time.Time) {
	t.DaysPassed = t.DaysSince(now)

	remaining := OverdueThresholdDays - t.DaysPassed
	if remaining < 0 {
		remaining = 0
	}
	t.DaysRemaining = remaining

	switch t.Status {
	case StatusPending, StatusOverdue:
		t.IsOverdue = t.DaysPassed >= OverdueThresholdDays
	default:
		t.IsOverdue = false
	}
}

// ArchiveBlockers returns the conditions still preventing archival, empty when
// the record is eligible. Callers surface these verbatim so the operator knows
// exactly what is missing.
func (t *Termination) ArchiveBlockers() []string {
	var blockers []string

	if t.Status != StatusEquipmentReturned {
		blockers = append(blockers, "equipment has not been marked as returned")
	}
	if t.TrackingNumber == nil || *t.TrackingNumber == "" {
		blockers = append(blockers, "tracking number is missing")
	}
	if t.CompletedByUserID == nil || *t.CompletedByUserID == "" {
		blockers = append(blockers, "return has no assigned IT staff member")
	}
	if t.EquipmentDisposition == DispositionPendingAssessment {
		blockers = append(blockers, "equipment disposition is still pending assessment")
	}
	if !t.Checklist.IsComplete() {
		blockers = append(blockers, "offboarding checklist is not fully complete")
	}

	return blockers
}

// CanArchive reports whether every archival gate is satisfied.
func (t *Termination) CanArchive() bool {
	return len(t.ArchiveBlockers()) == 0
}
