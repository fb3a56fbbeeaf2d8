package user

import "errors"

var (
	ErrUserNotFound        = errors.New("User not found")
	ErrEmailExists         = errors.New("Email already registered")
	ErrStaffAccessRequired = errors.New("Staff access required")
	ErrITAccessRequired    = errors.New("IT or admin access required")
	ErrAdminAccessRequired = errors.New("Admin access required")
)
