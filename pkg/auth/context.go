package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "user_id"

// ErrUnauthenticated is returned when the request context carries no user.
// Handlers answer 401 when they see it.
var ErrUnauthenticated = errors.New("user_id not found in context")

// UserIDFromCtx returns the authenticated user set by RequireAuth.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return id, nil
}

// WithUserID attaches the authenticated user to ctx.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
