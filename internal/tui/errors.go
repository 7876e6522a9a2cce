package tui

import (
	"errors"
	"strings"

	"github.com/mintid/mintid/internal/session"
)

// humanizeSignInError maps sign-in workflow errors to messages suitable for
// the login form. Unknown-username and inactive-account cases are reported
// distinctly: this form already disclosed username existence during the
// pre-authentication lookup, so there is nothing left to hide.
func humanizeSignInError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrInvalidUsername):
		return "Username may not be empty or contain '@'"
	case errors.Is(err, session.ErrProfileNotFound):
		return "No account with that username"
	case errors.Is(err, session.ErrProfileInactive):
		return "This account has been deactivated. Contact your administrator."
	case errors.Is(err, session.ErrInvalidCredentials):
		return "Incorrect password"
	case errors.Is(err, session.ErrIdentityMismatch):
		return "Account configuration error. Contact your administrator."
	case errors.Is(err, session.ErrProfileFetchFailed):
		return "Could not load your profile. Please try again."
	case errors.Is(err, session.ErrServiceUnavailable):
		return "Service unavailable. Please try again later."
	}

	return humanizeNetworkError(err)
}

func humanizeNetworkError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the server is unreachable"
	}

	return err.Error()
}
