package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the main screen's bindings.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Activate   key.Binding
	UnitType   key.Binding
	AddGroup   key.Binding
	AddCommand key.Binding
	FocusLog   key.Binding
	Copy       key.Binding
	Save       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.UnitType, k.AddGroup, k.AddCommand, k.FocusLog, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Activate},
		{k.UnitType, k.AddGroup, k.AddCommand},
		{k.FocusLog, k.Copy, k.Save, k.Reload},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		UnitType: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unit type"),
		),
		AddGroup: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "add group"),
		),
		AddCommand: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add command"),
		),
		FocusLog: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "log/grid"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy log"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
