package input

import "tvnav/internal/domain"

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// SignalAction forwards a navigation op to the focus engine
type SignalAction struct {
	Op domain.Op
}

func (a SignalAction) Type() string { return "signal" }

// RescanAction re-enumerates the page's focusables
type RescanAction struct{}

func (a RescanAction) Type() string { return "rescan" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// OpenPagerAction shows the full key reference in a pager
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
)

func (m Mode) String() string {
	if m == ModeHelp {
		return "help"
	}
	return "normal"
}
