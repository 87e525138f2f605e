package repositories

import (
	"context"

	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
)

// UserRepository is the persistence port for listing owners.
type UserRepository interface {
	// Save inserts a user and assigns its id. Returns ErrUserAlreadyExists
	// when the email is taken.
	Save(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
