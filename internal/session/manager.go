package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mintid/mintid/internal/adapter"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/models"
)

// Manager drives the sign-in workflow and owns the client's session state.
//
// Every sign-in or restore is tagged with an attempt id; a completion whose
// attempt id no longer matches the current one is discarded, so a response
// that arrives after a sign-out (or after a newer attempt started) can never
// resurrect a stale session.
type Manager struct {
	backend   adapter.BackendAdapter
	cache     store.SessionCache
	operators *identity.Operators

	mu        sync.RWMutex
	state     State
	attemptID string

	subscribers map[int]chan State
	nextSubID   int

	logger *logger.Logger
}

// NewManager creates a Manager in the unknown, loading state. cache may be
// nil when session persistence is disabled.
func NewManager(backend adapter.BackendAdapter, cache store.SessionCache, operators *identity.Operators, logger *logger.Logger) *Manager {
	return &Manager{
		backend:   backend,
		cache:     cache,
		operators: operators,
		state: State{
			Phase:   PhaseUnknown,
			Loading: true,
		},
		subscribers: make(map[int]chan State),
		logger:      logger,
	}
}

// State returns the current shared snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers for state snapshots. Every transition is delivered to
// the returned channel; the cancel function unregisters it. A slow consumer
// loses intermediate snapshots rather than blocking the Manager.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	ch := make(chan State, 8)
	m.subscribers[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(sub)
		}
	}
}

// SignIn runs the full login workflow for a username and password:
//
//  1. validate the username and resolve the canonical email, looking the
//     profile up by username first so an unknown or deactivated username
//     fails before any password is sent;
//  2. authenticate against the backend;
//  3. verify the authenticated account id matches the profile row;
//  4. load the post-authentication profile;
//  5. publish the settled state and persist it to the local cache.
//
// The platform operator skips the pre-authentication lookup (its email is a
// configured literal, not derived from a profile row) and is the only
// account allowed to finish without a profile.
func (m *Manager) SignIn(ctx context.Context, username, password string) error {
	if err := identity.ValidateUsername(username); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUsername, username)
	}

	attemptID := m.beginAttempt()

	operator, isOperator := m.operators.Lookup(username)

	var email string
	var preAuth models.UserProfile
	if isOperator {
		email = operator.Email
	} else {
		// Fail fast on unknown or deactivated usernames. This is the one
		// place username existence is deliberately disclosed; the password
		// has not been transmitted yet.
		var err error
		preAuth, err = m.backend.QueryProfileByUsername(ctx, username, false)
		switch {
		case errors.Is(err, adapter.ErrNotFound):
			m.failAttempt(attemptID)
			return ErrProfileNotFound
		case errors.Is(err, adapter.ErrForbidden):
			m.failAttempt(attemptID)
			return ErrProfileInactive
		case err != nil:
			m.failAttempt(attemptID)
			return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}

		email = identity.ResolveEmail(username, preAuth.OrganizationID)
	}

	sess, err := m.backend.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrBadRequest):
		m.failAttempt(attemptID)
		return ErrInvalidCredentials
	case errors.Is(err, adapter.ErrForbidden):
		m.failAttempt(attemptID)
		return ErrProfileInactive
	case err != nil:
		m.failAttempt(attemptID)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	sess.IsPlatformOperator = isOperator

	if !isOperator && sess.UserID != preAuth.UserID {
		m.logger.Error().
			Str("session_user_id", sess.UserID).
			Str("profile_user_id", preAuth.UserID).
			Msg("authenticated identity does not match profile row")
		m.teardown(ctx, attemptID, sess)
		return ErrIdentityMismatch
	}

	profile, err := m.backend.CurrentProfile(ctx)
	if err != nil {
		if isOperator {
			// The operator bypass: authenticated with no profile row is a
			// legal terminal state for the allow-listed account only.
			return m.completeAttempt(ctx, attemptID, sess, nil)
		}

		m.logger.Error().Err(err).Str("user_id", sess.UserID).Msg("profile fetch failed after authentication")
		m.teardown(ctx, attemptID, sess)
		return ErrProfileFetchFailed
	}

	return m.completeAttempt(ctx, attemptID, sess, &profile)
}

// SignOut ends the current session. It is idempotent: signing out while
// already anonymous is not an error. Any in-flight sign-in attempt is
// invalidated before the backend call, so its late completion is discarded.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.attemptID = ""
	wasEstablished := m.state.Session.Established()
	m.state = State{Phase: PhaseAnonymous}
	m.mu.Unlock()
	m.notify()

	if m.cache != nil {
		if err := m.cache.ClearSession(ctx); err != nil {
			m.logger.Warn().Err(err).Msg("could not clear cached session")
		}
	}

	if !wasEstablished {
		m.backend.SetToken("")
		return nil
	}

	if err := m.backend.SignOut(ctx); err != nil && !errors.Is(err, adapter.ErrUnauthorized) {
		m.logger.Warn().Err(err).Msg("backend sign-out failed")
	}

	return nil
}

// Restore revalidates a locally cached session at startup. An invalid or
// missing cache resolves to the anonymous state; it is not an error.
func (m *Manager) Restore(ctx context.Context) error {
	attemptID := m.beginAttempt()

	if m.cache == nil {
		m.failAttempt(attemptID)
		return nil
	}

	sess, profile, err := m.cache.LoadSession(ctx)
	if err != nil || !sess.Established() {
		m.failAttempt(attemptID)
		return nil
	}

	m.backend.SetToken(sess.Token)

	if _, err := m.backend.CurrentSession(ctx); err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			// Cached token expired. Forget it.
			m.teardown(ctx, attemptID, sess)
			return nil
		}
		m.failAttempt(attemptID)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	// Refresh the profile rather than trusting the cached copy; role or
	// activation may have changed since the session was saved.
	fresh, err := m.backend.CurrentProfile(ctx)
	switch {
	case err == nil:
		profile = &fresh
	case sess.IsPlatformOperator:
		profile = nil
	default:
		m.teardown(ctx, attemptID, sess)
		return nil
	}

	return m.completeAttempt(ctx, attemptID, sess, profile)
}

// Refresh revalidates an established session in place. Expiry resolves to a
// local sign-out.
func (m *Manager) Refresh(ctx context.Context) error {
	if !m.State().Session.Established() {
		return nil
	}

	if _, err := m.backend.CurrentSession(ctx); err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			m.logger.Info().Msg("session expired, signing out")
			return m.SignOut(ctx)
		}
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return nil
}

// beginAttempt invalidates any previous attempt and flips the state to
// loading. It returns the new attempt id.
func (m *Manager) beginAttempt() string {
	id := uuid.NewString()

	m.mu.Lock()
	m.attemptID = id
	m.state.Loading = true
	m.mu.Unlock()
	m.notify()

	return id
}

// failAttempt resolves an attempt into the anonymous state, unless a newer
// attempt has superseded it.
func (m *Manager) failAttempt(attemptID string) {
	m.mu.Lock()
	if m.attemptID != attemptID {
		m.mu.Unlock()
		return
	}
	m.state = State{Phase: PhaseAnonymous}
	m.mu.Unlock()
	m.notify()
}

// teardown revokes the session an attempt established and resolves the
// attempt to the anonymous state. Used when an attempt authenticated but
// cannot complete. Revocation targets the attempt's own token; the shared
// adapter token and cache are cleared only while the attempt is still
// current, because a newer attempt may own them by now.
func (m *Manager) teardown(ctx context.Context, attemptID string, sess models.Session) {
	if err := m.backend.RevokeSession(ctx, sess.Token); err != nil && !errors.Is(err, adapter.ErrUnauthorized) {
		m.logger.Warn().Err(err).Msg("teardown sign-out failed")
	}

	m.mu.Lock()
	if m.attemptID != attemptID {
		m.mu.Unlock()
		return
	}
	m.state = State{Phase: PhaseAnonymous}
	m.mu.Unlock()

	m.backend.SetToken("")
	if m.cache != nil {
		if err := m.cache.ClearSession(ctx); err != nil {
			m.logger.Warn().Err(err).Msg("could not clear cached session")
		}
	}
	m.notify()
}

// completeAttempt publishes the settled state for attemptID. A completion
// for a superseded attempt is discarded and the session it established is
// torn down, so a stale response never overwrites newer state.
func (m *Manager) completeAttempt(ctx context.Context, attemptID string, sess models.Session, profile *models.UserProfile) error {
	phase := PhaseAuthenticated
	if profile == nil {
		phase = PhaseAuthenticatedNoProfile
	}

	m.mu.Lock()
	if m.attemptID != attemptID {
		m.mu.Unlock()
		m.logger.Info().Str("user_id", sess.UserID).Msg("discarding stale sign-in completion")
		// Revoke with the stale attempt's own token. The shared adapter
		// token may already belong to a newer session.
		if err := m.backend.RevokeSession(ctx, sess.Token); err != nil && !errors.Is(err, adapter.ErrUnauthorized) {
			m.logger.Warn().Err(err).Msg("stale session sign-out failed")
		}
		return nil
	}
	m.state = State{
		Phase:   phase,
		Loading: false,
		Session: sess,
		Profile: profile,
	}
	m.mu.Unlock()
	m.notify()

	if m.cache != nil {
		if err := m.cache.SaveSession(ctx, sess, profile); err != nil {
			m.logger.Warn().Err(err).Msg("could not persist session")
		}
	}

	return nil
}

func (m *Manager) notify() {
	m.mu.RLock()
	state := m.state
	subs := make([]chan State, 0, len(m.subscribers))
	for _, ch := range m.subscribers {
		subs = append(subs, ch)
	}
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- state:
		default:
		}
	}
}
