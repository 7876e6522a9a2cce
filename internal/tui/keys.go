package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit    key.Binding
	logout  key.Binding
	session key.Binding
	copy    key.Binding
	refresh key.Binding
	esc     key.Binding
}

var keys = keyMap{
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:  key.NewBinding(key.WithKeys("l")),
	session: key.NewBinding(key.WithKeys("s")),
	copy:    key.NewBinding(key.WithKeys("c")),
	refresh: key.NewBinding(key.WithKeys("r")),
	esc:     key.NewBinding(key.WithKeys("esc")),
}
