package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jfraser77/hrops-backend/internal/domain/user"
)

type UserService struct {
	userRepo user.Repository
}

func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	u := user.User{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: req.Email,
		Role:  user.Role(req.Role),
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if err == user.ErrEmailExists {
			return user.User{}, err
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListITStaff returns the users eligible to be assigned equipment returns.
func (s *UserService) ListITStaff(ctx context.Context) ([]user.User, error) {
	staff, err := s.userRepo.ListByRoles(ctx, []user.Role{user.RoleAdmin, user.RoleIT})
	if err != nil {
		return nil, fmt.Errorf("failed to list IT staff: %w", err)
	}
	return staff, nil
}
