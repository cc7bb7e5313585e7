package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
)

// userService is the concrete implementation of UserService
type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func newUserService(d Deps) *userService {
	return &userService{
		users: d.Repos.User,
		log:   d.Log.With().Str("service", "user").Logger(),
	}
}

// Get returns a user visible to caller
func (s *userService) Get(ctx context.Context, caller models.Caller, id string) (*models.User, error) {
	if err := requireSelfOrManager(caller, id); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("user", id)
	}
	return user, nil
}

// Associates lists users who can be assigned tasks
func (s *userService) Associates(ctx context.Context, caller models.Caller) ([]*models.User, error) {
	if err := requireManager(caller, "list associates"); err != nil {
		return nil, err
	}

	users, err := s.users.ListByRole(ctx, models.RoleAssociate)
	if err != nil {
		return nil, fmt.Errorf("failed to list associates: %w", err)
	}
	return users, nil
}
