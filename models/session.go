package models

import "time"

// Session is the client-side snapshot of an established authentication
// session. Token material is managed by the server; the client only carries
// the signed string and the identity it was issued for.
//
// Lifecycle is bounded by explicit sign-in/sign-out or token expiry.
type Session struct {
	// UserID is the authenticated account identifier (the token subject).
	UserID string `json:"user_id"`

	// Token is the compact signed JWT presented on authenticated requests.
	Token string `json:"token"`

	// IsPlatformOperator marks the hard-wired operator escape hatch.
	// It is resolved exactly once at session-establishment time from the
	// configured allow-list, never re-derived by string comparison in
	// guard checks.
	IsPlatformOperator bool `json:"is_platform_operator"`

	// EstablishedAt records when the session was created on this client.
	EstablishedAt time.Time `json:"established_at"`
}

// Established reports whether the session carries usable token material.
func (s Session) Established() bool {
	return s.UserID != "" && s.Token != ""
}
