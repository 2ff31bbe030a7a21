package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	nextTab key.Binding
	prevTab key.Binding
	field   key.Binding
	enter   key.Binding
	back    key.Binding
	refresh key.Binding
	open    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		field:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "switch field")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit/select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/close")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextTab, k.prevTab, k.field},
		{k.enter, k.back, k.refresh},
		{k.open, k.quit},
	}
}
