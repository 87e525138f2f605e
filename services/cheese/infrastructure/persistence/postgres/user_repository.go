package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/cheeseshop/pkg/database"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
	"github.com/ghuser/cheeseshop/services/cheese/infrastructure/persistence/postgres/db"
)

const uniqueViolation = "23505"

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by database.
func NewUserRepository(database *database.Database) *UserRepository {
	return &UserRepository{db: database}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// Save inserts a user. Returns ErrUserAlreadyExists when the email is taken.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	id, err := db.New(r.db.DB()).InsertUser(ctx, db.InsertUserParams{
		Email:     user.Email,
		Username:  user.Username.String(),
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return cheesedomain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return user.AssignID(id)
}

// GetByID returns ErrUserNotFound when no row matches.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cheesedomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &models.User{
		ID:        row.ID,
		Email:     row.Email,
		Username:  models.Username(row.Username),
		CreatedAt: row.CreatedAt,
	}, nil
}

// Exists reports whether a user with the given id exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := db.New(r.db.DB()).UserExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}
