package auth

import (
	"context"
	"errors"
	"testing"
)

func TestUserIDFromCtx(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		want    int64
		wantErr error
	}{
		{name: "set", ctx: WithUserID(context.Background(), 42), want: 42},
		{name: "empty context", ctx: context.Background(), wantErr: ErrUserIDNotFound},
		{name: "zero id", ctx: WithUserID(context.Background(), 0), wantErr: ErrUserIDNotFound},
		{name: "negative id", ctx: WithUserID(context.Background(), -3), wantErr: ErrUserIDNotFound},
		{name: "wrong type", ctx: context.WithValue(context.Background(), userIDKey, "42"), wantErr: ErrUserIDNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UserIDFromCtx(tt.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
