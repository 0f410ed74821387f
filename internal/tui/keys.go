package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Remove key.Binding
	Undo   key.Binding
	Quit   key.Binding

	// form keys
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Next:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
	}
}

// ShortHelp is shown under the list and on the empty screen.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Remove, k.Undo, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k keyMap) formHelp(adding bool) []key.Binding {
	if adding {
		return []key.Binding{k.Submit, k.Next, k.Cancel}
	}
	return []key.Binding{k.Submit, k.Cancel}
}
