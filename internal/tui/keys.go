package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Jump     key.Binding
	Menu     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Tab      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "jump")),
		Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Prev:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "journey")),
		Next:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("h/l", "journey")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "skills")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Jump, k.Menu, k.Next, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Jump, k.Menu},
		{k.Prev, k.Tab},
		{k.Help, k.Quit},
	}
}
