package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Full access, user administration
	RoleIT    Role = "it"    // Equipment returns, checklist work
	RoleHR    Role = "hr"    // Creates terminations, receives alerts
)

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleIT, RoleHR:
		return true
	}
	return false
}

type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsITStaff reports whether the user can be assigned equipment returns.
func (u *User) IsITStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleIT
}
