package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"github.com/ghuser/cheeseshop/pkg/database"
	"github.com/ghuser/cheeseshop/pkg/logger"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
	pg "github.com/ghuser/cheeseshop/services/cheese/infrastructure/persistence/postgres"
)

var listingColumns = []string{"id", "title", "description", "price", "created_at", "is_published", "owner_id"}

func newListingRepo(t *testing.T) (*pg.CheeseListingRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return pg.NewCheeseListingRepository(database.New(conn, logger.Discard()), nil), mock
}

func listingRow(l *models.CheeseListing) *sqlmock.Rows {
	return sqlmock.NewRows(listingColumns).AddRow(
		l.ID(), l.Title(), l.Description(), l.Price(), l.CreatedAt(), l.IsPublished(), l.OwnerID(),
	)
}

func TestCheeseListingRepository_Save(t *testing.T) {
	repo, mock := newListingRepo(t)

	l := models.NewCheeseListing("Blue stilton")
	l.SetTextDescription("Crumbly and sharp")
	l.SetPrice(1500)
	l.SetOwner(3)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cheese_listings")).
		WithArgs("Blue stilton", "Crumbly and sharp", int64(1500), l.CreatedAt(), false, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), l); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	if l.ID() != 42 {
		t.Errorf("ID = %d, want 42", l.ID())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheeseListingRepository_SaveRollsBackOnError(t *testing.T) {
	repo, mock := newListingRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO cheese_listings").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	l := models.NewCheeseListing("Brie")
	if err := repo.Save(context.Background(), l); err == nil {
		t.Fatal("expected error")
	}
	if l.ID() != 0 {
		t.Errorf("ID assigned on failed insert: %d", l.ID())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheeseListingRepository_GetByID(t *testing.T) {
	repo, mock := newListingRepo(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	want := models.RestoreCheeseListing(7, "Gouda", "Nutty<br />\nand smooth", 999, created, true, 2)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title")).
		WithArgs(int64(7)).
		WillReturnRows(listingRow(want))

	got, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID err=%v", err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(models.CheeseListing{})); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCheeseListingRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newListingRepo(t)

	mock.ExpectQuery("FROM cheese_listings").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(listingColumns))

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, cheesedomain.ErrCheeseListingNotFound) {
		t.Fatalf("err = %v, want ErrCheeseListingNotFound", err)
	}
}

func TestCheeseListingRepository_Find(t *testing.T) {
	repo, mock := newListingRepo(t)

	published := true
	gte := int64(100)
	filter := repositories.ListingFilter{
		IsPublished: &published,
		Title:       "50%",
		Price:       repositories.PriceRange{GTE: &gte},
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM cheese_listings WHERE is_published = $1 AND title ILIKE $2 ESCAPE '\' AND price >= $3`)).
		WithArgs(true, `%50\%%`, int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	now := time.Now().UTC()
	rows := sqlmock.NewRows(listingColumns).
		AddRow(int64(11), "Feta 50% off", "Salty", int64(250), now, true, int64(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id LIMIT $4 OFFSET $5")).
		WithArgs(true, `%50\%%`, int64(100), int64(10), int64(10)).
		WillReturnRows(rows)

	got, total, err := repo.Find(context.Background(), filter, repositories.QueryOpts{Limit: 10, Offset: 10})
	if err != nil {
		t.Fatalf("Find err=%v", err)
	}
	if total != 11 {
		t.Errorf("total = %d, want 11", total)
	}
	if len(got) != 1 || got[0].ID() != 11 {
		t.Fatalf("got %d listings", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheeseListingRepository_FindWithoutFilter(t *testing.T) {
	repo, mock := newListingRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cheese_listings")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id LIMIT $1 OFFSET $2")).
		WithArgs(int64(10), int64(0)).
		WillReturnRows(sqlmock.NewRows(listingColumns))

	got, total, err := repo.Find(context.Background(), repositories.ListingFilter{}, repositories.QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("Find err=%v", err)
	}
	if total != 0 || len(got) != 0 {
		t.Errorf("got total=%d len=%d", total, len(got))
	}
}

func TestCheeseListingRepository_Update(t *testing.T) {
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("keeps stored publication flag", func(t *testing.T) {
		repo, mock := newListingRepo(t)
		l := models.RestoreCheeseListing(5, "Comte", "Aged", 2000, created, false, 9)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SET title = $2, description = $3, price = $4, owner_id = $5")).
			WithArgs(int64(5), "Comte", "Aged", int64(2000), int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"is_published"}).AddRow(true))
		mock.ExpectCommit()

		if err := repo.Update(context.Background(), l); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if !l.IsPublished() {
			t.Error("listing should carry the stored is_published")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newListingRepo(t)
		l := models.RestoreCheeseListing(5, "Comte", "Aged", 2000, created, false, 9)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE cheese_listings")).
			WillReturnRows(sqlmock.NewRows([]string{"is_published"}))
		mock.ExpectRollback()

		if err := repo.Update(context.Background(), l); !errors.Is(err, cheesedomain.ErrCheeseListingNotFound) {
			t.Fatalf("err = %v, want not found", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestCheeseListingRepository_SetPublished(t *testing.T) {
	stored := models.RestoreCheeseListing(5, "Comte", "Aged", 2000, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), true, 9)

	t.Run("writes only the flag", func(t *testing.T) {
		repo, mock := newListingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SET is_published = $2\nWHERE id = $1")).
			WithArgs(int64(5), true).
			WillReturnRows(listingRow(stored))
		mock.ExpectCommit()

		got, err := repo.SetPublished(context.Background(), 5, true)
		if err != nil {
			t.Fatalf("SetPublished: %v", err)
		}
		if !got.IsPublished() || got.Title() != "Comte" || got.OwnerID() != 9 {
			t.Errorf("unexpected listing %+v", got)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newListingRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SET is_published")).
			WithArgs(int64(6), false).
			WillReturnRows(sqlmock.NewRows(listingColumns))
		mock.ExpectRollback()

		if _, err := repo.SetPublished(context.Background(), 6, false); !errors.Is(err, cheesedomain.ErrCheeseListingNotFound) {
			t.Fatalf("err = %v, want not found", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestCheeseListingRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "missing", rows: 0, wantErr: cheesedomain.ErrCheeseListingNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newListingRepo(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cheese_listings")).
				WithArgs(int64(8)).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))
			if tt.wantErr != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			err := repo.Delete(context.Background(), 8)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
