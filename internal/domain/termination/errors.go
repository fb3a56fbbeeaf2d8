package termination

import (
	"errors"
	"strings"
)

var (
	ErrTerminationNotFound   = errors.New("Termination not found")
	ErrChecklistItemNotFound = errors.New("Checklist item not found")
	ErrAlreadyArchived       = errors.New("Termination is already archived")
)

// NotEligibleError reports a failed archival attempt together with every
// unmet condition, so the caller can show the operator what is missing.
type NotEligibleError struct {
	Blockers []string
}

func (e *NotEligibleError) Error() string {
	return "termination is not eligible for archival: " + strings.Join(e.Blockers, "; ")
}
