// Package utils provides general-purpose helper utilities
// used across different parts of the application:
// context keys, password hashing, JWT generation and validation,
// HTTP response writing and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the auth middleware stores the resolved
// [models.User] of the caller.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// ok == false means the value is missing or has an unexpected type,
// i.e. the request did not pass through the auth middleware.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}
