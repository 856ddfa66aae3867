// Package utils provides small helpers shared across the application:
// type-safe context keys, JSON response writing, JWT generation and
// validation, and UUID generation.
package utils

import "context"

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the
// authenticated user's ID in the request context.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the
// context. ok is false when the value is missing or has the wrong type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
