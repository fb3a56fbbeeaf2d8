package termination

import (
	"time"

	"github.com/jfraser77/hrops-backend/internal/pkg/validator"
)

type CreateTerminationRequest struct {
	EmployeeName         string    `json:"employee_name"`
	EmployeeEmail        string    `json:"employee_email"`
	TerminationDate      string    `json:"termination_date"`
	JobTitle             *string   `json:"job_title,omitempty"`
	Department           *string   `json:"department,omitempty"`
	TerminationReason    *string   `json:"termination_reason,omitempty"`
	InitiatedBy          *string   `json:"initiated_by,omitempty"`
	EquipmentDisposition *string   `json:"equipment_disposition,omitempty"`
	Checklist            Checklist `json:"checklist,omitempty"`
}

func (r *CreateTerminationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name is required",
		})
	}

	if validator.IsEmpty(r.EmployeeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_email",
			Message: "employee_email is required",
		})
	} else if !validator.IsValidEmail(r.EmployeeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_email",
			Message: "employee_email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.TerminationDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "termination_date",
			Message: "termination_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.TerminationDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "termination_date",
			Message: "termination_date must be in YYYY-MM-DD format",
		})
	}

	if r.EquipmentDisposition != nil && !IsValidDisposition(*r.EquipmentDisposition) {
		errs = append(errs, validator.ValidationError{
			Field:   "equipment_disposition",
			Message: "equipment_disposition must be one of: return_to_pool, retire, pending_assessment",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTerminationRequest struct {
	EmployeeName         *string    `json:"employee_name,omitempty"`
	EmployeeEmail        *string    `json:"employee_email,omitempty"`
	JobTitle             *string    `json:"job_title,omitempty"`
	Department           *string    `json:"department,omitempty"`
	TerminationDate      *string    `json:"termination_date,omitempty"`
	TerminationReason    *string    `json:"termination_reason,omitempty"`
	InitiatedBy          *string    `json:"initiated_by,omitempty"`
	Status               *string    `json:"status,omitempty"`
	TrackingNumber       *string    `json:"tracking_number,omitempty"`
	EquipmentDisposition *string    `json:"equipment_disposition,omitempty"`
	CompletedByUserID    *string    `json:"completed_by_user_id,omitempty"`
	Checklist            *Checklist `json:"checklist,omitempty"`
}

func (r *UpdateTerminationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeName != nil && validator.IsEmpty(*r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_name",
			Message: "employee_name must not be empty",
		})
	}

	if r.EmployeeEmail != nil && !validator.IsValidEmail(*r.EmployeeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_email",
			Message: "employee_email must be a valid email address",
		})
	}

	if r.TerminationDate != nil {
		if _, ok := validator.IsValidDate(*r.TerminationDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "termination_date",
				Message: "termination_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Status != nil && !IsValidStatus(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, overdue, equipment_returned, archived",
		})
	}

	if r.EquipmentDisposition != nil && !IsValidDisposition(*r.EquipmentDisposition) {
		errs = append(errs, validator.ValidationError{
			Field:   "equipment_disposition",
			Message: "equipment_disposition must be one of: return_to_pool, retire, pending_assessment",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Fields converts the request into a repository partial update.
func (r *UpdateTerminationRequest) Fields() UpdateFields {
	fields := UpdateFields{
		EmployeeName:      r.EmployeeName,
		EmployeeEmail:     r.EmployeeEmail,
		JobTitle:          r.JobTitle,
		Department:        r.Department,
		TerminationReason: r.TerminationReason,
		InitiatedBy:       r.InitiatedBy,
		TrackingNumber:    r.TrackingNumber,
		CompletedByUserID: r.CompletedByUserID,
		Checklist:         r.Checklist,
	}
	if r.TerminationDate != nil {
		if date, ok := validator.IsValidDate(*r.TerminationDate); ok {
			fields.TerminationDate = &date
		}
	}
	if r.Status != nil {
		status := Status(*r.Status)
		fields.Status = &status
	}
	if r.EquipmentDisposition != nil {
		disposition := EquipmentDisposition(*r.EquipmentDisposition)
		fields.EquipmentDisposition = &disposition
	}
	return fields
}

// MarkReturnedRequest records an equipment return. All three fields gate the
// transition to equipment_returned.
type MarkReturnedRequest struct {
	TrackingNumber       string `json:"tracking_number"`
	EquipmentDisposition string `json:"equipment_disposition"`
	CompletedByUserID    string `json:"completed_by_user_id"`
}

func (r *MarkReturnedRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TrackingNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "tracking_number",
			Message: "tracking_number is required",
		})
	}

	if validator.IsEmpty(r.CompletedByUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "completed_by_user_id",
			Message: "completed_by_user_id is required",
		})
	}

	if validator.IsEmpty(r.EquipmentDisposition) {
		errs = append(errs, validator.ValidationError{
			Field:   "equipment_disposition",
			Message: "equipment_disposition is required",
		})
	} else if !IsValidDisposition(r.EquipmentDisposition) {
		errs = append(errs, validator.ValidationError{
			Field:   "equipment_disposition",
			Message: "equipment_disposition must be one of: return_to_pool, retire, pending_assessment",
		})
	} else if EquipmentDisposition(r.EquipmentDisposition) == DispositionPendingAssessment {
		errs = append(errs, validator.ValidationError{
			Field:   "equipment_disposition",
			Message: "equipment_disposition must be resolved before recording a return",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetItemCompletionRequest struct {
	Completed bool `json:"completed"`
}

type AddChecklistItemRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (r *AddChecklistItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkChecklistRequest sets completion for every item, or every item in a
// category when Category is present.
type BulkChecklistRequest struct {
	Category  *string `json:"category,omitempty"`
	Completed bool    `json:"completed"`
}

// TerminationResponse is the wire shape for a termination record.
type TerminationResponse struct {
	ID                   int64      `json:"id"`
	EmployeeName         string     `json:"employee_name"`
	EmployeeEmail        string     `json:"employee_email"`
	JobTitle             *string    `json:"job_title,omitempty"`
	Department           *string    `json:"department,omitempty"`
	TerminationDate      string     `json:"termination_date"`
	TerminationReason    *string    `json:"termination_reason,omitempty"`
	InitiatedBy          *string    `json:"initiated_by,omitempty"`
	Status               Status     `json:"status"`
	TrackingNumber       *string    `json:"tracking_number,omitempty"`
	EquipmentDisposition string     `json:"equipment_disposition"`
	CompletedByUserID    *string    `json:"completed_by_user_id,omitempty"`
	CompletedByUserName  *string    `json:"completed_by_user_name,omitempty"`
	Checklist            Checklist  `json:"checklist"`
	ChecklistCompletion  float64    `json:"checklist_completion"`
	IsOverdue            bool       `json:"is_overdue"`
	DaysPassed           int        `json:"days_passed"`
	DaysRemaining        int        `json:"days_remaining"`
	CanArchive           bool       `json:"can_archive"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ToResponse converts an entity (with derived fields already computed) to its
// wire shape.
func ToResponse(t Termination) TerminationResponse {
	return TerminationResponse{
		ID:                   t.ID,
		EmployeeName:         t.EmployeeName,
		EmployeeEmail:        t.EmployeeEmail,
		JobTitle:             t.JobTitle,
		Department:           t.Department,
		TerminationDate:      t.TerminationDate.Format("2006-01-02"),
		TerminationReason:    t.TerminationReason,
		InitiatedBy:          t.InitiatedBy,
		Status:               t.Status,
		TrackingNumber:       t.TrackingNumber,
		EquipmentDisposition: string(t.EquipmentDisposition),
		CompletedByUserID:    t.CompletedByUserID,
		CompletedByUserName:  t.CompletedByUserName,
		Checklist:            t.Checklist,
		ChecklistCompletion:  t.Checklist.CompletionRatio(),
		IsOverdue:            t.IsOverdue,
		DaysPassed:           t.DaysPassed,
		DaysRemaining:        t.DaysRemaining,
		CanArchive:           t.CanArchive(),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}
