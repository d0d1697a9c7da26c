package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	UserAdminKey contextKey = "is_admin"
)

// SetUserContext sets the authenticated identity into context (called by middleware)
func SetUserContext(ctx context.Context, id uuid.UUID, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserAdminKey, isAdmin)
	return ctx
}

// GetUserIDFromContext retrieves the caller's user id safely
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext retrieves the caller's email safely
func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

// IsAdminFromContext reports whether the caller carries the admin flag
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(UserAdminKey).(bool)
	return isAdmin
}
