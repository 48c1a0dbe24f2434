package interaction

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds key names to handler actions. Each binding accepts both the
// Bubble Tea spelling ("down", "pgup") and the DOM spelling ("ArrowDown",
// "PageUp") of a key.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Commit   key.Binding
	Open     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	Close    key.Binding
	Clear    key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ArrowUp"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ArrowDown"),
			key.WithHelp("↓", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "ArrowLeft"),
			key.WithHelp("←", "broader column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "ArrowRight"),
			key.WithHelp("→", "narrower column"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "Home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "End"),
			key.WithHelp("end", "last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "PageUp"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "PageDown"),
			key.WithHelp("pgdn", "page down"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter", "Enter", " ", "space", "Spacebar"),
			key.WithHelp("enter/space", "select"),
		),
		Open: key.NewBinding(
			key.WithKeys(" ", "space", "Spacebar", "alt+down", "Alt+ArrowDown"),
			key.WithHelp("space", "open"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "Enter"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "Tab", "shift+tab"),
			key.WithHelp("tab", "leave"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "Escape"),
			key.WithHelp("esc", "close"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "Backspace", "delete", "Delete"),
			key.WithHelp("⌫", "clear"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Commit, k.Clear, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Left, k.Right},
		{k.Open, k.Commit, k.Clear, k.Close, k.Tab},
	}
}

// name adapts a raw key name to key.Matches.
type name string

func (n name) String() string { return string(n) }
