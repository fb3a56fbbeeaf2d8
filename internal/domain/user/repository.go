package user

import "context"

// Repository - interface for the users table
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ListByRoles(ctx context.Context, roles []Role) ([]User, error)
}
