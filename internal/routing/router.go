// Package routing maps authenticated profiles to their destination views and
// gates access to protected views.
//
// Both operations are pure decisions over (session state, profile, required
// roles); navigation itself is the caller's concern. Keeping the decisions
// side-effect free makes the whole access model unit-testable without any UI
// or transport in the loop.
package routing

import "github.com/mintid/mintid/models"

// Destination paths for the role-routed dashboards. These are internal
// string constants, not negotiated with the backend.
const (
	PathSuperAdminDashboard = "/dashboard/super-admin"
	PathOrgAdminDashboard   = "/dashboard/org-admin"
	PathManagerDashboard    = "/dashboard/manager"
	PathEmployeeDashboard   = "/dashboard/employee"

	// PathDefault is the landing view for unrecognized or missing roles.
	// Reaching it is a handled condition, not an error.
	PathDefault = "/welcome"

	// PathLogin is the authentication entry point unauthenticated visitors
	// of protected views are redirected to.
	PathLogin = "/login"
)

var roleDestinations = map[models.Role]string{
	models.RoleSuperAdmin: PathSuperAdminDashboard,
	models.RoleOrgAdmin:   PathOrgAdminDashboard,
	models.RoleManager:    PathManagerDashboard,
	models.RoleEmployee:   PathEmployeeDashboard,
}

// DestinationFor returns the dashboard path for role. The mapping is total:
// every recognized role maps to exactly one destination and anything else
// falls back to PathDefault.
func DestinationFor(role models.Role) string {
	if dest, ok := roleDestinations[role]; ok {
		return dest
	}

	return PathDefault
}
