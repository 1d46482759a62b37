package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tvnav/internal/domain"
)

// Handler turns terminal keys into actions for the current mode
type Handler struct {
	keys        KeyMap
	currentMode Mode
}

func New() *Handler {
	return &Handler{keys: DefaultKeyMap(), currentMode: ModeNormal}
}

// Keys returns the active bindings
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey maps a key to actions; the bool reports whether the key was consumed
func (h *Handler) HandleKey(msg tea.KeyMsg) ([]Action, bool) {
	if key.Matches(msg, h.keys.Force) {
		return []Action{QuitAction{Force: true}}, true
	}
	if h.currentMode == ModeHelp {
		return h.handleHelp(msg)
	}
	return h.handleNormal(msg)
}

func (h *Handler) handleNormal(msg tea.KeyMsg) ([]Action, bool) {
	if op := h.Op(msg); op != domain.OpNone {
		return []Action{SignalAction{Op: op}}, true
	}

	switch {
	case key.Matches(msg, h.keys.Rescan):
		return []Action{RescanAction{}}, true
	case key.Matches(msg, h.keys.Help):
		h.currentMode = ModeHelp
		return []Action{ToggleHelpAction{}}, true
	case key.Matches(msg, h.keys.Pager):
		return []Action{OpenPagerAction{}}, true
	case key.Matches(msg, h.keys.Quit):
		return []Action{QuitAction{Force: false}}, true
	}
	return nil, false
}

// handleHelp swallows navigation while the help overlay is open
func (h *Handler) handleHelp(msg tea.KeyMsg) ([]Action, bool) {
	switch {
	case key.Matches(msg, h.keys.Help), key.Matches(msg, h.keys.Back), key.Matches(msg, h.keys.Quit):
		h.currentMode = ModeNormal
		return []Action{ToggleHelpAction{}}, true
	case key.Matches(msg, h.keys.Pager):
		return []Action{OpenPagerAction{}}, true
	}
	return nil, true
}

// Op normalizes a terminal key to a navigation op, OpNone when it is not one
func (h *Handler) Op(msg tea.KeyMsg) domain.Op {
	switch {
	case key.Matches(msg, h.keys.Up):
		return domain.OpUp
	case key.Matches(msg, h.keys.Down):
		return domain.OpDown
	case key.Matches(msg, h.keys.Left):
		return domain.OpLeft
	case key.Matches(msg, h.keys.Right):
		return domain.OpRight
	case key.Matches(msg, h.keys.Enter):
		return domain.OpEnter
	case key.Matches(msg, h.keys.Back):
		return domain.OpBack
	case key.Matches(msg, h.keys.Next):
		return domain.OpNext
	case key.Matches(msg, h.keys.Prev):
		return domain.OpPrev
	}
	// disabled bindings never match, so compare the keys directly
	k := msg.String()
	for _, s := range h.keys.Home.Keys() {
		if s == k {
			return domain.OpHome
		}
	}
	for _, s := range h.keys.Digit.Keys() {
		if s == k {
			return domain.OpNumeric
		}
	}
	return domain.OpNone
}

// CurrentMode returns the active input mode
func (h *Handler) CurrentMode() Mode {
	if h == nil {
		return ModeNormal
	}
	return h.currentMode
}

// ChangeMode switches the input mode
func (h *Handler) ChangeMode(mode Mode) {
	h.currentMode = mode
}

func (h *Handler) Reset() {
	h.currentMode = ModeNormal
}
