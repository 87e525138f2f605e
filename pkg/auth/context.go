package auth

import (
	"context"
	"errors"
)

type contextKey string

const userIDKey contextKey = "user_id"

// ErrUserIDNotFound is returned when the request carries no authenticated user.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// UserIDFromCtx returns the authenticated user ID set by RequireAuth.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok || id <= 0 {
		return 0, ErrUserIDNotFound
	}
	return id, nil
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
