// Package identity implements credential resolution for MinTid accounts.
//
// The authentication backend only understands email/password pairs, while
// users sign in with a human-chosen username. The resolver maps a username
// (plus an optional organization) to the synthetic email address the backend
// actually authenticates. Resolution is pure string construction: it never
// touches the network and never fails once its input has been validated.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Domain is the fixed domain suffix of every synthesized address.
const Domain = "mintid.local"

// fallbackSubdomain is used when no organization is known for the account.
const fallbackSubdomain = "accounts"

// Validation errors returned by ValidateUsername. Match with [errors.Is].
var (
	// ErrEmptyUsername is returned for an empty or all-whitespace username.
	ErrEmptyUsername = errors.New("username is empty")

	// ErrInvalidUsername is returned when the username contains characters
	// that would break the synthesized address ('@' or whitespace).
	ErrInvalidUsername = errors.New("username contains invalid characters")
)

// ValidateUsername checks that username can be resolved to a well-formed
// synthetic email. It must be called before ResolveEmail; the resolver
// itself is total over validated input.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return ErrEmptyUsername
	}
	if strings.ContainsAny(trimmed, "@ \t\n") {
		return ErrInvalidUsername
	}

	return nil
}

// NormalizeUsername returns the canonical storage form of a username:
// trimmed and lowercased. Profiles are stored and looked up in this form so
// that two casings of one username can never name two accounts, and so the
// lookup key always agrees with the local part of the synthesized email.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ResolveEmail produces the synthetic email address for a username.
//
// The canonical construction rule is:
//
//	<username>@<organization_id>.mintid.local   when an organization is known
//	<username>@accounts.mintid.local            otherwise
//
// Both parts are lowercased, so resolution is deterministic regardless of
// how the caller cased the input. Because usernames may not contain '@'
// (see ValidateUsername) and the organization only affects the domain part,
// distinct usernames never collide on the same address.
func ResolveEmail(username, organizationID string) string {
	local := NormalizeUsername(username)

	sub := strings.ToLower(strings.TrimSpace(organizationID))
	if sub == "" {
		sub = fallbackSubdomain
	}

	return fmt.Sprintf("%s@%s.%s", local, sub, Domain)
}
