// Package app contains shared application-layer constants used across the
// MinTid server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body is not valid JSON.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request body decodes but
	// fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not resolve to an account. Unknown accounts and wrong
	// passwords produce the same message.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgProfileDeactivated is returned when the target profile exists but
	// has been deactivated. Deactivation wins over every other check,
	// including password verification.
	MsgProfileDeactivated = "profile is deactivated"

	// MsgAccessDenied is returned when an authenticated caller lacks the
	// administrative rights an endpoint requires.
	MsgAccessDenied = "access denied"

	// MsgTooManyLoginAttempts is returned when the login rate limit for a
	// client address has been exhausted.
	MsgTooManyLoginAttempts = "too many login attempts"
)
