package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	mark     key.Binding
	sort     key.Binding
	publish  key.Binding
	download key.Binding
	dismiss  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		mark:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		publish:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "save")),
		dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.mark, k.sort, k.publish},
		{k.download, k.dismiss, k.quit},
	}
}
