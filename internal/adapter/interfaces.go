// Package adapter provides the client's transport layer for talking to the
// MinTid backend.
//
// The primary abstraction is [BackendAdapter], which decouples the session
// workflow from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPBackendAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrForbidden] for a deactivated profile,
// [ErrUnauthorized] for bad credentials or an expired token).
package adapter

import (
	"context"

	"github.com/mintid/mintid/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_adapter_mock.go -package=mock

// BackendAdapter defines transport-agnostic communication with the MinTid
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type BackendAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called after a successful Authenticate and
	// when restoring a cached session.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Authenticate exchanges a canonical email and password for a session.
	// On success the returned session carries the signed token and the
	// authenticated account's ID, and the token is stored via SetToken.
	// Returns [ErrUnauthorized] for wrong credentials and [ErrForbidden]
	// when the profile is deactivated.
	Authenticate(ctx context.Context, email string, password string) (models.Session, error)

	// SignOut tells the backend the session is over and clears the stored
	// token. The local token is cleared even when the request fails.
	SignOut(ctx context.Context) error

	// RevokeSession ends the session identified by token on the backend
	// without touching the stored token. Used to revoke a session that
	// lost the race against a newer sign-in attempt.
	RevokeSession(ctx context.Context, token string) error

	// CurrentSession asks the backend whether the stored token is still
	// valid. Returns [ErrUnauthorized] when it is not.
	CurrentSession(ctx context.Context) (models.SessionResponse, error)

	// QueryProfileByUsername resolves a profile by username. With
	// includeInactive set, deactivated profiles are returned instead of
	// failing with [ErrForbidden].
	QueryProfileByUsername(ctx context.Context, username string, includeInactive bool) (models.UserProfile, error)

	// CurrentProfile fetches the profile bound to the authenticated account.
	CurrentProfile(ctx context.Context) (models.UserProfile, error)

	// ServerVersion reports the backend's build version.
	ServerVersion(ctx context.Context) (string, error)
}
