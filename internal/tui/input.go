package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Input is an abstract input symbol. Views and sub-scopes route on
// these, never on raw key codes, so the state machine stays decoupled
// from the terminal.
type Input int

const (
	InputNone Input = iota
	InputUp
	InputDown
	InputLeft
	InputRight
	InputConfirm
	InputCancel
	InputMenu
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Menu    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Confirm: key.NewBinding(key.WithKeys("enter", "z")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "x")),
		Menu:    key.NewBinding(key.WithKeys("tab", "m")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) symbol(msg tea.KeyMsg) Input {
	switch {
	case key.Matches(msg, k.Up):
		return InputUp
	case key.Matches(msg, k.Down):
		return InputDown
	case key.Matches(msg, k.Left):
		return InputLeft
	case key.Matches(msg, k.Right):
		return InputRight
	case key.Matches(msg, k.Confirm):
		return InputConfirm
	case key.Matches(msg, k.Cancel):
		return InputCancel
	case key.Matches(msg, k.Menu):
		return InputMenu
	}
	return InputNone
}
