package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	HalfUp    key.Binding
	HalfDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	NextHunk  key.Binding
	PrevHunk  key.Binding
	Accept    key.Binding
	Reject    key.Binding
	AcceptAll key.Binding
	Commit    key.Binding
	Copy      key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/up", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/down", "scroll down"),
	),
	HalfUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "half page up"),
	),
	HalfDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "half page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("gg/Home", "go to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G/End", "go to bottom"),
	),
	NextHunk: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n", "next change"),
	),
	PrevHunk: key.NewBinding(
		key.WithKeys("p", "shift+tab"),
		key.WithHelp("p", "prev change"),
	),
	Accept: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "accept change"),
	),
	Reject: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reject change"),
	),
	AcceptAll: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "accept all"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "commit"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy merged"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q/esc", "cancel"),
	),
}
