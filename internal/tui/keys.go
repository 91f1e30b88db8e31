package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Accept    key.Binding
	Reject    key.Binding
	Undo      key.Binding
	AcceptAll key.Binding
	RejectAll key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
		Next:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Accept:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Reject:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		Undo:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		AcceptAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "accept all")),
		RejectAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reject all")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Accept, k.Reject, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Accept, k.Reject, k.Undo},
		{k.AcceptAll, k.RejectAll},
		{k.Copy, k.Help, k.Quit},
	}
}

// viewportKeys leaves j/k/u/arrows to the review bindings, even while those are disabled.
func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", "f", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	}
}
