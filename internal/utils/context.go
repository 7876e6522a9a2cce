// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, and JWT token generation and validation.
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

// UserIDCtxKey is the key used to store the authenticated account identifier
// in the context. Used together with GetUserIDFromContext for type-safe
// retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, "8f14e45f-...")
var UserIDCtxKey = contextKey("userID")

// OperatorCtxKey marks requests authenticated as the platform operator.
var OperatorCtxKey = contextKey("isOperator")

// GetUserIDFromContext retrieves the account identifier from the context.
//
// Returns the user ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// IsOperatorFromContext reports whether the request was authenticated as the
// platform operator. Absence of the marker means a regular account.
func IsOperatorFromContext(ctx context.Context) bool {
	isOperator, ok := ctx.Value(OperatorCtxKey).(bool)
	return ok && isOperator
}
