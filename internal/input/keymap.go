package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the terminal key bindings
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Back   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Home   key.Binding
	Digit  key.Binding
	Rescan key.Binding
	Help   key.Binding
	Pager  key.Binding
	Quit   key.Binding
	Force  key.Binding
}

// DefaultKeyMap returns arrow and vim style bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:  key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "activate")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Home:   key.NewBinding(key.WithKeys("home"), key.WithDisabled()),
		Digit:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithDisabled()),
		Rescan: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Pager:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "key reference")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Back, k.Next, k.Prev},
		{k.Rescan, k.Help, k.Pager, k.Quit},
	}
}
