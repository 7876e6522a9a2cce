package routing

import "github.com/mintid/mintid/models"

// DecisionKind enumerates the possible outcomes of a guard check.
type DecisionKind int

const (
	// DecisionWait means the session is still resolving: render a
	// non-committal waiting state, perform no navigation.
	DecisionWait DecisionKind = iota

	// DecisionRender means the caller may render the protected view.
	DecisionRender

	// DecisionRedirect means the caller must navigate to Decision.Target.
	DecisionRedirect

	// DecisionBlockInactive means the account is deactivated: render a
	// blocking message, do not redirect (redirecting here would loop).
	DecisionBlockInactive
)

// Decision is the outcome of a guard check. For DecisionRedirect, Target is
// the path to navigate to and ReturnTo preserves the originally requested
// location so it can be revisited after login.
type Decision struct {
	Kind     DecisionKind
	Target   string
	ReturnTo string
}

// GuardInput is everything a guard decision depends on. Loading must remain
// true until both the session and the profile have settled (or been
// explicitly determined absent); flipping it early races the profile fetch
// and produces spurious redirects.
type GuardInput struct {
	Loading bool
	Session models.Session

	// Profile is nil while unresolved or when the account has no profile
	// row. The platform-operator bypass is the only state in which a nil
	// profile still grants access.
	Profile *models.UserProfile

	// RequestedPath is the protected location being visited; it is carried
	// into the login redirect so the user can be returned there.
	RequestedPath string
}

// Guard decides whether a protected view may render for the given state and
// required-role set. An empty requiredRoles set means "any authenticated,
// active profile".
//
// The precedence order is fixed:
//  1. still loading            → wait
//  2. no session               → redirect to login (preserving the request)
//  3. operator bypass          → render, regardless of roles and profile
//  4. no profile               → treated as unauthenticated, redirect to login
//  5. inactive profile         → blocking message, never a redirect
//  6. super_admin role         → render, regardless of the required set
//  7. role not in required set → redirect to the safe default
func Guard(in GuardInput, requiredRoles ...models.Role) Decision {
	if in.Loading {
		return Decision{Kind: DecisionWait}
	}

	if !in.Session.Established() {
		return Decision{Kind: DecisionRedirect, Target: PathLogin, ReturnTo: in.RequestedPath}
	}

	if in.Session.IsPlatformOperator {
		return Decision{Kind: DecisionRender}
	}

	if in.Profile == nil {
		return Decision{Kind: DecisionRedirect, Target: PathLogin, ReturnTo: in.RequestedPath}
	}

	if !in.Profile.IsActive {
		return Decision{Kind: DecisionBlockInactive}
	}

	if in.Profile.Role == models.RoleSuperAdmin {
		return Decision{Kind: DecisionRender}
	}

	if len(requiredRoles) == 0 {
		return Decision{Kind: DecisionRender}
	}

	for _, role := range requiredRoles {
		if in.Profile.Role == role {
			return Decision{Kind: DecisionRender}
		}
	}

	return Decision{Kind: DecisionRedirect, Target: PathDefault}
}
