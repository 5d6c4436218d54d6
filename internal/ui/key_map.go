package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	send     key.Binding
	pageUp   key.Binding
	pageDown key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		pageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		pageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.send, k.pageUp, k.pageDown, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.send, k.quit},
		{k.pageUp, k.pageDown},
	}
}
