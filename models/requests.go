package models

// LoginRequest is the payload of POST /api/auth/login. Email is the synthetic
// address produced by the credential resolver, never a user-chosen one.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by GET /api/auth/session for a valid token.
type SessionResponse struct {
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// SeedPlan describes one batch of fixture profiles to create.
// Usernames are generated as "<role>.test<n>" for n in 1..Count.
type SeedPlan struct {
	Role           Role   `json:"role"`
	Count          int    `json:"count"`
	OrganizationID string `json:"organization_id"`
	Password       string `json:"password"`
}

// SeedResult reports what a seeding run actually did. Seeding is idempotent:
// usernames that already exist are skipped, not overwritten.
type SeedResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// RoleChangeRequest is the payload of the admin role-change operation.
type RoleChangeRequest struct {
	Role Role `json:"role"`
}
