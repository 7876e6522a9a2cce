package tui

import "github.com/mintid/mintid/internal/session"

// NavigateTo switches the root router to another page. Payload, when set, is
// re-delivered to the destination page as its first message.
type NavigateTo struct {
	Page    string
	Payload any
}

// SignInResult reports the outcome of an async sign-in command.
type SignInResult struct {
	Username string
	Err      error
}

type sessionStateMsg struct {
	state session.State
}

type refreshDoneMsg struct {
	state session.State
}

type signOutDoneMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
