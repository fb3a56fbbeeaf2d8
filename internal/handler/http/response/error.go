package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jfraser77/hrops-backend/internal/domain/inventory"
	"github.com/jfraser77/hrops-backend/internal/domain/termination"
	"github.com/jfraser77/hrops-backend/internal/domain/user"
	"github.com/jfraser77/hrops-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Archival eligibility carries the list of blockers
	var notEligible *termination.NotEligibleError
	if errors.As(err, &notEligible) {
		details := make(map[string]string, len(notEligible.Blockers))
		for i, blocker := range notEligible.Blockers {
			details["blocker_"+strconv.Itoa(i+1)] = blocker
		}
		Conflict(w, "Termination record is not eligible for archival", details)
		return
	}

	switch {
	// Termination domain errors
	case errors.Is(err, termination.ErrTerminationNotFound):
		NotFound(w, "Termination record not found")
	case errors.Is(err, termination.ErrChecklistItemNotFound):
		NotFound(w, "Checklist item not found")
	case errors.Is(err, termination.ErrAlreadyArchived):
		Conflict(w, "Termination record is already archived", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered", nil)
	case errors.Is(err, user.ErrStaffAccessRequired),
		errors.Is(err, user.ErrITAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())

	// Inventory domain errors
	case errors.Is(err, inventory.ErrStaffNotFound):
		NotFound(w, "Staff member not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
