package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mintid/mintid/internal/session"
	"github.com/mintid/mintid/models"
)

// ErrUserQuit is returned when the user exits the program from the sign-in
// screen instead of authenticating.
var ErrUserQuit = errors.New("quit by user")

// TUI owns the terminal frontend: the sign-in flow and the role-routed
// dashboard loop. Session state lives in the [session.Manager]; the TUI only
// renders it and dispatches commands.
type TUI struct {
	manager *session.Manager

	buildInfo models.AppBuildInfo
}

func New(manager *session.Manager, buildInfo models.AppBuildInfo) *TUI {
	return &TUI{manager: manager, buildInfo: buildInfo}
}

// LoginFlow runs the sign-in screen until the user authenticates or quits.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		"login": NewLoginModel(ctx, t.manager),
	}

	root := NewRootModel(pages, "login", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

// MainLoop runs the dashboard until the user signs out or quits. It reports
// logout=true when the session ended and the sign-in flow should run again.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newDashboardModel(ctx, t.manager)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(dashboardModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
