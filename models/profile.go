package models

import "time"

// Role classifies a profile for routing and access decisions.
// Exactly one role is assigned per profile; there is no hierarchy between
// roles. The platform operator bypass is intentionally NOT a role value
// (see [Session.IsPlatformOperator]).
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleOrgAdmin   Role = "org_admin"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

// Known reports whether r is one of the closed set of recognized roles.
// Unrecognized roles are not an error at routing time; they fall back to
// the default landing destination.
func (r Role) Known() bool {
	switch r {
	case RoleSuperAdmin, RoleOrgAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// UserProfile is the application-level user record, distinct from the bare
// authentication account. It carries everything the routing and access
// layers need: role, affiliation and the active flag.
//
// Invariant: Username is unique and non-empty across all profiles.
type UserProfile struct {
	// ProfileID is the internal surrogate key of the profile row.
	// It is not exposed via JSON and is used only at the persistence layer.
	ProfileID int64 `json:"-"`

	// UserID is the stable, opaque account identifier. It must match the
	// subject of any session issued for this profile; a mismatch is a
	// configuration error, never silently accepted.
	UserID string `json:"user_id"`

	// Username is the human-chosen unique login name. Mutable by admins only.
	Username string `json:"username"`

	// DisplayName is non-sensitive and may be shown in UI.
	DisplayName string `json:"display_name"`

	// Role determines exactly one routing destination.
	Role Role `json:"role"`

	// OrganizationID is empty for accounts not bound to an organization.
	OrganizationID string `json:"organization_id,omitempty"`

	// DepartmentID is optional and empty when the profile has no department.
	DepartmentID string `json:"department_id,omitempty"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never serialized, never logged.
	PasswordHash string `json:"-"`

	// IsActive gates authentication: inactive profiles must not be able to
	// sign in even with correct credentials. Profiles are soft-deleted by
	// clearing this flag, never removed.
	IsActive bool `json:"is_active"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the UserProfile model.
func (p UserProfile) TableName() string {
	return "profiles"
}
