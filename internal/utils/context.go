// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user's id in
// the request context.
var UserIDCtxKey = contextKey("userID")

// UsernameCtxKey is the key used to store the authenticated username.
var UsernameCtxKey = contextKey("username")

// IsAdminCtxKey is the key used to store the authenticated user's admin flag.
var IsAdminCtxKey = contextKey("isAdmin")

// GetUserIDFromContext retrieves the authenticated user's id from the context.
//
// Returns the id and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// GetUsernameFromContext retrieves the authenticated username from the context.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// GetIsAdminFromContext retrieves the authenticated user's admin flag
// from the context. Missing value is reported as ok == false.
func GetIsAdminFromContext(ctx context.Context) (bool, bool) {
	isAdmin, ok := ctx.Value(IsAdminCtxKey).(bool)
	return isAdmin, ok
}
