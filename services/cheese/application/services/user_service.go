package services

import (
	"context"
	"fmt"

	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
)

// UserService registers and looks up listing owners.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService returns a UserService backed by repo.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create registers a user. The email format is checked by the caller.
func (s *UserService) Create(ctx context.Context, email, username string) (*models.User, error) {
	name, err := models.NewUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cheesedomain.ErrInvalidUser, err)
	}

	user := models.NewUser(email, name)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Get returns ErrUserNotFound when no user has the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
