package user

import "context"

// Service is the directory surface consumed by handlers.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ListITStaff(ctx context.Context) ([]User, error)
}
