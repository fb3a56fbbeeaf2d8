package termination

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ChecklistItem is a single offboarding task. CompletedBy and CompletedDate are
// set together when Completed flips true and cleared together when it flips
// false; nothing else touches them.
type ChecklistItem struct {
	ID            string     `json:"id"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	Completed     bool       `json:"completed"`
	CompletedBy   *string    `json:"completed_by,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

// Checklist is the ordered set of items owned by a termination record. It is
// stored as a JSONB column and serialized at the repository boundary.
type Checklist []ChecklistItem

// Value implements driver.Valuer for database storage
func (c Checklist) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(Checklist{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *Checklist) Scan(value interface{}) error {
	if value == nil {
		*c = Checklist{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Checklist: invalid type")
	}

	return json.Unmarshal(bytes, c)
}

// Checklist categories
const (
	CategoryActiveDirectory = "Active Directory"
	CategoryMicrosoft365    = "Microsoft 365"
	CategorySoftwareAccess  = "Software Access"
	CategoryPhoneFax        = "Phone/Fax"
)

// DefaultChecklist returns the standard 18-item offboarding template cloned
// into every new termination that does not supply its own checklist.
func DefaultChecklist() Checklist {
	items := []struct {
		category    string
		description string
	}{
		{CategoryActiveDirectory, "Disable Active Directory account"},
		{CategoryActiveDirectory, "Reset account password"},
		{CategoryActiveDirectory, "Remove from all security groups"},
		{CategoryActiveDirectory, "Move account to Disabled Users OU"},
		{CategoryActiveDirectory, "Revoke VPN access"},
		{CategoryMicrosoft365, "Convert mailbox to shared mailbox"},
		{CategoryMicrosoft365, "Set up email forwarding to manager"},
		{CategoryMicrosoft365, "Remove Microsoft 365 licenses"},
		{CategoryMicrosoft365, "Wipe enrolled mobile devices in Intune"},
		{CategoryMicrosoft365, "Remove from Teams and distribution lists"},
		{CategorySoftwareAccess, "Revoke ERP system access"},
		{CategorySoftwareAccess, "Revoke CRM access"},
		{CategorySoftwareAccess, "Remove from password manager"},
		{CategorySoftwareAccess, "Deactivate SSO application assignments"},
		{CategorySoftwareAccess, "Remove from shared drives and project tools"},
		{CategoryPhoneFax, "Reassign direct phone extension"},
		{CategoryPhoneFax, "Remove from fax distribution groups"},
		{CategoryPhoneFax, "Update company phone directory"},
	}

	checklist := make(Checklist, 0, len(items))
	for i, item := range items {
		checklist = append(checklist, ChecklistItem{
			ID:          fmt.Sprintf("%d", i+1),
			Category:    item.category,
			Description: item.description,
		})
	}
	return checklist
}

// NewCustomItemID generates an id for an ad hoc checklist item. Default
// template items use numeric ids, so the prefix keeps the two ranges apart.
func NewCustomItemID(now time.Time) string {
	return fmt.Sprintf("custom-%d", now.UnixMilli())
}

// Clone returns a deep copy.
func (c Checklist) Clone() Checklist {
	clone := make(Checklist, len(c))
	copy(clone, c)
	for i := range clone {
		if c[i].CompletedBy != nil {
			by := *c[i].CompletedBy
			clone[i].CompletedBy = &by
		}
		if c[i].CompletedDate != nil {
			at := *c[i].CompletedDate
			clone[i].CompletedDate = &at
		}
	}
	return clone
}

// CompletedCount returns the number of completed items.
func (c Checklist) CompletedCount() int {
	count := 0
	for _, item := range c {
		if item.Completed {
			count++
		}
	}
	return count
}

// CompletionRatio returns completed/total. An empty checklist counts as 0 so
// a record with no items can never slip through the archival gate.
func (c Checklist) CompletionRatio() float64 {
	if len(c) == 0 {
		return 0
	}
	return float64(c.CompletedCount()) / float64(len(c))
}

// IsComplete reports whether the checklist has items and all are completed.
func (c Checklist) IsComplete() bool {
	return len(c) > 0 && c.CompletedCount() == len(c)
}

func stamp(item *ChecklistItem, completed bool, actor string, now time.Time) {
	item.Completed = completed
	if completed {
		item.CompletedBy = &actor
		completedAt := now
		item.CompletedDate = &completedAt
	} else {
		item.CompletedBy = nil
		item.CompletedDate = nil
	}
}

// SetCompletion flips one item's completion state, stamping or clearing
// completed_by/completed_date together.
func (c Checklist) SetCompletion(itemID string, completed bool, actor string, now time.Time) error {
	for i := range c {
		if c[i].ID == itemID {
			stamp(&c[i], completed, actor, now)
			return nil
		}
	}
	return ErrChecklistItemNotFound
}

// SetCategoryCompletion applies the completion state to every item in the
// category. A category with no items is a no-op, not an error.
func (c Checklist) SetCategoryCompletion(category string, completed bool, actor string, now time.Time) {
	for i := range c {
		if c[i].Category == category {
			stamp(&c[i], completed, actor, now)
		}
	}
}

// SetAllCompletion applies the completion state to every item.
func (c Checklist) SetAllCompletion(completed bool, actor string, now time.Time) {
	for i := range c {
		stamp(&c[i], completed, actor, now)
	}
}

// Add appends a new incomplete item and returns it.
func (c *Checklist) Add(category, description string, now time.Time) ChecklistItem {
	item := ChecklistItem{
		ID:          NewCustomItemID(now),
		Category:    category,
		Description: description,
	}
	*c = append(*c, item)
	return item
}

// Remove deletes an item by id.
func (c *Checklist) Remove(itemID string) error {
	for i := range *c {
		if (*c)[i].ID == itemID {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return nil
		}
	}
	return ErrChecklistItemNotFound
}
