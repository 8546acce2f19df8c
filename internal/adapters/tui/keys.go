package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Use      key.Binding
	Later    key.Binding
	Earlier  key.Binding
	Edit     key.Binding
	Apply    key.Binding
	Cancel   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		Use:      key.NewBinding(key.WithKeys("enter", "u"), key.WithHelp("enter/u", "use")),
		Later:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "offset +0.5s")),
		Earlier:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "offset -0.5s")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit offset")),
		Apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset charges")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Use, k.Later, k.Earlier, k.Edit, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Use, k.Later, k.Earlier, k.Edit, k.Apply, k.Cancel},
		{k.Reset, k.Help, k.Quit},
	}
}
