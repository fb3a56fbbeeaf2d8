package inventory

import "time"

// StaffInventory is the available-laptop counter for one IT staff member.
// Returns dispositioned as return_to_pool credit the assigned staff member's
// counter; the counter never goes below zero.
type StaffInventory struct {
	UserID           string    `json:"user_id"`
	AvailableLaptops int       `json:"available_laptops"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Join (for responses)
	UserName *string `json:"user_name,omitempty"`
}
