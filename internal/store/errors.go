package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when creating a profile fails
	// because a profile with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrProfileNotFound is returned when a lookup expected to match at most
	// one profile produces an empty result set.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileInactive is returned by active-only lookups when the profile
	// row exists but its active flag is cleared. Inactive profiles must not
	// be permitted to authenticate.
	ErrProfileInactive = errors.New("profile is inactive")

	// ErrAmbiguousProfile is returned when a username lookup matches more
	// than one row. The uniqueness invariant makes this impossible in a
	// healthy database; encountering it is an internal consistency error,
	// not a user-facing condition.
	ErrAmbiguousProfile = errors.New("ambiguous profile: username matched multiple rows")
)

// Low-level database operation errors, wrapped around driver failures before
// any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan profile row")
)
