package screens

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Submit      key.Binding
	Complete    key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Clear       key.Binding
	SelectAll   key.Binding
	Copy        key.Binding
	Save        key.Binding
	Help        key.Binding
	About       key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:      key.NewBinding(key.WithKeys("enter")),
		Complete:    key.NewBinding(key.WithKeys("tab")),
		Backspace:   key.NewBinding(key.WithKeys("backspace")),
		Delete:      key.NewBinding(key.WithKeys("delete")),
		Left:        key.NewBinding(key.WithKeys("left")),
		Right:       key.NewBinding(key.WithKeys("right")),
		Up:          key.NewBinding(key.WithKeys("up")),
		Down:        key.NewBinding(key.WithKeys("down")),
		Home:        key.NewBinding(key.WithKeys("home")),
		End:         key.NewBinding(key.WithKeys("end")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right")),
		PageUp:      key.NewBinding(key.WithKeys("pgup")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown")),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("^L", "clear"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("^A", "select all"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^C", "copy"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "save as"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		About: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "about"),
		),
		Cancel: key.NewBinding(key.WithKeys("esc")),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+d"),
			key.WithHelp("^Q", "quit"),
		),
	}
}

// ShortHelp lists the shell actions for the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Clear,
		k.SelectAll,
		k.Copy,
		k.Save,
		k.Help,
		k.About,
		k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
