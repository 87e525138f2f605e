package services

import (
	"context"
	"errors"
	"testing"

	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
)

func TestUserService_Create(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	u, err := svc.Create(context.Background(), " Wallace@Example.com", "Wallace")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 || u.Email != "wallace@example.com" || u.Username.String() != "Wallace" {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestUserService_CreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "too short", username: "W", wantErr: cheesedomain.ErrInvalidUser},
		{name: "double space", username: "Wallace  Gromit", wantErr: cheesedomain.ErrInvalidUser},
		{name: "duplicate email", username: "Gromit", wantErr: cheesedomain.ErrUserAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(newFakeUserRepo())
			if _, err := svc.Create(context.Background(), "wallace@example.com", "Wallace"); err != nil {
				t.Fatalf("seed: %v", err)
			}
			_, err := svc.Create(context.Background(), "wallace@example.com", tt.username)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(5))

	if _, err := svc.Get(context.Background(), 5); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), 6); !errors.Is(err, cheesedomain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
