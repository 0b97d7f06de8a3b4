package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	focus    key.Binding
	back     key.Binding
	favorite key.Binding
	open     key.Binding
	quit     key.Binding
	forceQ   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "edit query")),
		favorite: key.NewBinding(key.WithKeys("f", " ", "space"), key.WithHelp("f/space", "favorite")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open preview")),
		quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQ:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// inputKeys are shown while the query input has focus
func (k keyMap) inputKeys() []key.Binding {
	return []key.Binding{k.focus, k.forceQ}
}

// listKeys are shown while the track list has focus
func (k keyMap) listKeys() []key.Binding {
	return []key.Binding{k.up, k.down, k.favorite, k.open, k.back, k.quit}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.focus},
		{k.favorite, k.open, k.back},
		{k.quit, k.forceQ},
	}
}
