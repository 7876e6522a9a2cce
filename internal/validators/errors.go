package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyUsername       = errors.New("username is required")
	ErrInvalidUsername     = errors.New("invalid username")
	ErrEmptyDisplayName    = errors.New("display name is required")
	ErrUnknownRole         = errors.New("unknown role")
	ErrEmptyPassword       = errors.New("password is required")
	ErrNonPositiveCount    = errors.New("count must be positive")
	ErrMissingOrganization = errors.New("organization ID is required")
)
