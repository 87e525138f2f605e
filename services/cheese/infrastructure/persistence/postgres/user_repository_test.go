package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/cheeseshop/pkg/database"
	"github.com/ghuser/cheeseshop/pkg/logger"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	pg "github.com/ghuser/cheeseshop/services/cheese/infrastructure/persistence/postgres"
)

func newUserRepo(t *testing.T) (*pg.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return pg.NewUserRepository(database.New(conn, logger.Discard())), mock
}

func TestUserRepository_Save(t *testing.T) {
	repo, mock := newUserRepo(t)
	u := models.NewUser("Cheesehead@Example.com ", models.Username("cheesehead"))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("cheesehead@example.com", "cheesehead", u.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	if err := repo.Save(context.Background(), u); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	if u.ID != 3 {
		t.Errorf("ID = %d, want 3", u.ID)
	}
}

func TestUserRepository_SaveDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Save(context.Background(), models.NewUser("a@b.co", models.Username("ab")))
	if !errors.Is(err, cheesedomain.ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock := newUserRepo(t)
	created := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	want := &models.User{ID: 1, Email: "a@b.co", Username: "ab", CreatedAt: created}

	mock.ExpectQuery("FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "created_at"}).
			AddRow(int64(1), "a@b.co", "ab", created))

	got, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery("FROM users").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "created_at"}))

	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, cheesedomain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_Exists(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), 4)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}
