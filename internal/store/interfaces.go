package store

import (
	"context"

	"github.com/mintid/mintid/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProfileRepository is the persistence contract for application profiles.
// All lookups have zero-or-one semantics; see the sentinel errors in
// errors.go for the failure taxonomy.
type ProfileRepository interface {
	// CreateProfile persists a new profile and returns it with
	// server-assigned fields populated (ProfileID, timestamps).
	CreateProfile(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)

	// FindByUsername resolves a username to its profile. With activeOnly set
	// a row whose active flag is cleared yields ErrProfileInactive instead
	// of the profile, so login gating can distinguish "not found" from
	// "found but deactivated".
	FindByUsername(ctx context.Context, username string, activeOnly bool) (models.UserProfile, error)

	// FindByUserID resolves an authenticated account id to its profile.
	FindByUserID(ctx context.Context, userID string) (models.UserProfile, error)

	// UpdateRole reassigns the role of an existing profile.
	UpdateRole(ctx context.Context, username string, role models.Role) (models.UserProfile, error)

	// SetActive flips the soft-delete flag. Profiles are never hard-deleted
	// in normal operation.
	SetActive(ctx context.Context, username string, active bool) (models.UserProfile, error)

	// TouchLastLogin stamps last_login_at for the account after a
	// successful authentication.
	TouchLastLogin(ctx context.Context, userID string) error
}

// SessionCache is the client-side persistence contract for the session
// snapshot ("local storage" of the original application).
type SessionCache interface {
	// SaveSession stores or replaces the current session snapshot.
	SaveSession(ctx context.Context, session models.Session, profile *models.UserProfile) error

	// LoadSession returns the cached snapshot, or ErrNoCachedSession.
	LoadSession(ctx context.Context) (models.Session, *models.UserProfile, error)

	// ClearSession removes any cached snapshot. Idempotent.
	ClearSession(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
