package session

import "errors"

var (
	// ErrInvalidUsername rejects input before any credential resolution.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrProfileNotFound is surfaced by the pre-authentication lookup when
	// no profile is registered under the username. This is intentionally
	// more specific than ErrInvalidCredentials: the username check happens
	// before any password is sent.
	ErrProfileNotFound = errors.New("no profile registered for username")

	// ErrProfileInactive blocks sign-in for a deactivated profile before
	// the password is ever checked.
	ErrProfileInactive = errors.New("profile is deactivated")

	// ErrInvalidCredentials covers both unknown email and wrong password at
	// the authentication step, deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrServiceUnavailable wraps transport and backend failures.
	ErrServiceUnavailable = errors.New("authentication service unavailable")

	// ErrIdentityMismatch means the authenticated account id does not match
	// the profile row found for the username. That is a configuration
	// error, never silently accepted.
	ErrIdentityMismatch = errors.New("authenticated identity does not match profile")

	// ErrProfileFetchFailed means authentication succeeded but the profile
	// could not be loaded afterwards. The session is torn down rather than
	// left half-established.
	ErrProfileFetchFailed = errors.New("profile fetch failed after authentication")
)
