package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mintid/mintid/internal/routing"
	"github.com/mintid/mintid/internal/session"
	"github.com/mintid/mintid/models"
)

// dashboardModel renders the role-routed main screen. The view a session
// lands on is decided the same way on every render: resolve the destination
// for the profile's role, then run the access guard for that destination.
// Deactivation discovered mid-session therefore flips the screen to the
// blocking panel on the next state update without any extra wiring.
type dashboardModel struct {
	ctx     context.Context
	manager *session.Manager

	states      <-chan session.State
	unsubscribe func()

	state       session.State
	showSession bool
	status      string
	errMsg      string
	signingOut  bool

	logout bool
}

func newDashboardModel(ctx context.Context, manager *session.Manager) dashboardModel {
	states, unsubscribe := manager.Subscribe()

	return dashboardModel{
		ctx:         ctx,
		manager:     manager,
		states:      states,
		unsubscribe: unsubscribe,
		state:       manager.State(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.cmdAwaitState()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStateMsg:
		m.state = msg.state
		if !m.state.Loading && !m.state.Session.Established() {
			// Signed out elsewhere, most likely by the background refresh
			// noticing token expiry.
			m.logout = true
			m.unsubscribe()
			return m, tea.Quit
		}
		return m, m.cmdAwaitState()

	case refreshDoneMsg:
		m.state = msg.state
		if !m.state.Loading && !m.state.Session.Established() {
			m.logout = true
			m.unsubscribe()
			return m, tea.Quit
		}
		return m, nil

	case signOutDoneMsg:
		m.signingOut = false
		m.logout = true
		m.unsubscribe()
		return m, tea.Quit

	case copiedMsg:
		m.status = "Token copied to clipboard"
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.unsubscribe()
		return m, tea.Quit

	case key.Matches(msg, keys.logout):
		if m.signingOut {
			return m, nil
		}
		m.signingOut = true
		return m, m.cmdSignOut()

	case key.Matches(msg, keys.session):
		m.showSession = !m.showSession
		return m, nil

	case key.Matches(msg, keys.esc):
		m.showSession = false
		return m, nil

	case key.Matches(msg, keys.copy):
		if !m.showSession {
			return m, nil
		}
		token := m.state.Session.Token
		if token == "" {
			m.status = "Nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(token); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg { return copiedMsg{} }

	case key.Matches(msg, keys.refresh):
		return m, m.cmdRefresh()
	}

	return m, nil
}

func (m dashboardModel) View() string {
	decision := routing.Guard(m.state.GuardInput(m.destination()), m.requiredRoles()...)

	switch decision.Kind {
	case routing.DecisionWait:
		return renderPage("MINTID", "Loading session...", "")
	case routing.DecisionRedirect:
		return renderPage("MINTID", "Session ended. Returning to sign-in...", "")
	case routing.DecisionBlockInactive:
		return m.viewBlocked()
	}

	if m.showSession {
		return m.viewSession()
	}
	return m.viewDashboard()
}

// destination resolves where this session routes: the role dashboard for a
// profiled account, the super-admin dashboard for the operator escape hatch,
// the welcome fallback otherwise.
func (m dashboardModel) destination() string {
	if m.state.Profile != nil {
		return routing.DestinationFor(m.state.Profile.Role)
	}
	if m.state.Session.IsPlatformOperator {
		return routing.PathSuperAdminDashboard
	}
	return routing.PathDefault
}

// requiredRoles returns the role set guarding the resolved destination. The
// welcome fallback is open to any authenticated profile.
func (m dashboardModel) requiredRoles() []models.Role {
	switch m.destination() {
	case routing.PathSuperAdminDashboard:
		return []models.Role{models.RoleSuperAdmin}
	case routing.PathOrgAdminDashboard:
		return []models.Role{models.RoleOrgAdmin}
	case routing.PathManagerDashboard:
		return []models.Role{models.RoleManager}
	case routing.PathEmployeeDashboard:
		return []models.Role{models.RoleEmployee}
	}
	return nil
}

func (m dashboardModel) viewDashboard() string {
	var b strings.Builder

	title, lines := m.dashboardContent()

	if m.state.Profile != nil {
		p := m.state.Profile
		b.WriteString(fmt.Sprintf("Signed in as │ %s (%s)\n", p.DisplayName, p.Username))
		b.WriteString(fmt.Sprintf("Role         │ %s\n", p.Role))
		if p.OrganizationID != "" {
			b.WriteString(fmt.Sprintf("Organization │ %s\n", p.OrganizationID))
		}
		if p.DepartmentID != "" {
			b.WriteString(fmt.Sprintf("Department   │ %s\n", p.DepartmentID))
		}
		if p.LastLoginAt != nil {
			b.WriteString(fmt.Sprintf("Last login   │ %s\n", p.LastLoginAt.Format(time.RFC822)))
		}
	} else {
		b.WriteString("Signed in as │ platform operator (no profile)\n")
	}
	b.WriteString("\n")

	for _, line := range lines {
		b.WriteString("  • ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "s: session │ r: refresh │ l: sign out │ q: quit")
}

func (m dashboardModel) dashboardContent() (title string, lines []string) {
	switch m.destination() {
	case routing.PathSuperAdminDashboard:
		return "SUPER ADMIN DASHBOARD", []string{
			"All organizations",
			"Platform accounts",
			"Test data seeding",
		}
	case routing.PathOrgAdminDashboard:
		return "ORGANIZATION DASHBOARD", []string{
			"Organization settings",
			"Departments and staff",
			"Schedule templates",
		}
	case routing.PathManagerDashboard:
		return "MANAGER DASHBOARD", []string{
			"Team schedules",
			"Shift assignments",
			"Absence requests",
		}
	case routing.PathEmployeeDashboard:
		return "MY SCHEDULE", []string{
			"Upcoming shifts",
			"Time reporting",
			"Absence requests",
		}
	}

	// Authenticated, active, but the role is unrecognized. A handled
	// condition, not an error.
	return "WELCOME", []string{
		"Your account has no dashboard assigned yet.",
		"Contact your administrator to get a role.",
	}
}

func (m dashboardModel) viewSession() string {
	var b strings.Builder
	s := m.state.Session

	b.WriteString(fmt.Sprintf("User ID      │ %s\n", s.UserID))
	b.WriteString(fmt.Sprintf("Operator     │ %v\n", s.IsPlatformOperator))
	b.WriteString(fmt.Sprintf("Established  │ %s\n", s.EstablishedAt.Format(time.RFC822)))
	b.WriteString(fmt.Sprintf("Token        │ %s\n", fitText(s.Token, 44)))

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SESSION", strings.TrimRight(b.String(), "\n"), "c: copy token │ esc: back │ l: sign out")
}

func (m dashboardModel) viewBlocked() string {
	content := "Your account has been deactivated.\n\n" +
		"Contact your administrator to restore access."
	return overlayBoxStyle.Render(content) + "\n\n  " + helpStyle.Render("l: sign out │ q: quit")
}

func (m dashboardModel) cmdAwaitState() tea.Cmd {
	states := m.states
	return func() tea.Msg {
		state, ok := <-states
		if !ok {
			return nil
		}
		return sessionStateMsg{state: state}
	}
}

func (m dashboardModel) cmdSignOut() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	return func() tea.Msg {
		return signOutDoneMsg{err: manager.SignOut(ctx)}
	}
}

func (m dashboardModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	return func() tea.Msg {
		_ = manager.Refresh(ctx)
		return refreshDoneMsg{state: manager.State()}
	}
}
