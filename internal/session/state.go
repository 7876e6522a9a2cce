// Package session owns the client's authentication state machine: the
// sign-in workflow (credential resolution, authentication, profile load),
// sign-out, session restore from the local cache, and periodic revalidation.
//
// All consumers read a single shared snapshot ([Manager.State]); mutation
// happens only inside the Manager, so there is no concurrent writer to the
// session or profile anywhere else in the client.
package session

import (
	"github.com/mintid/mintid/internal/routing"
	"github.com/mintid/mintid/models"
)

// Phase classifies the client's authentication state.
type Phase int

const (
	// PhaseUnknown is the initial state, before the cached session (if any)
	// has been restored and validated.
	PhaseUnknown Phase = iota

	// PhaseAnonymous means no session is established.
	PhaseAnonymous

	// PhaseAuthenticated means a session and its profile are both settled.
	PhaseAuthenticated

	// PhaseAuthenticatedNoProfile means a session is established but no
	// profile row exists. Only the platform operator is allowed to remain
	// in this state; for everyone else it is transient and resolves into a
	// teardown.
	PhaseAuthenticatedNoProfile
)

func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAuthenticatedNoProfile:
		return "authenticated_no_profile"
	default:
		return "unknown"
	}
}

// State is the shared snapshot consumers read. Loading stays true from the
// start of a sign-in or restore until both the session and the profile have
// settled; route guards treat a loading state as "wait", so flipping it
// early would cause spurious redirects.
type State struct {
	Phase   Phase
	Loading bool

	Session models.Session

	// Profile is nil while anonymous, while loading, and in the operator's
	// no-profile state.
	Profile *models.UserProfile
}

// GuardInput converts the snapshot into the routing guard's input for a
// protected path.
func (s State) GuardInput(requestedPath string) routing.GuardInput {
	return routing.GuardInput{
		Loading:       s.Loading,
		Session:       s.Session,
		Profile:       s.Profile,
		RequestedPath: requestedPath,
	}
}
