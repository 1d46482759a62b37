package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvnav/internal/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHandlerNavigationKeys(t *testing.T) {
	h := New()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		op   domain.Op
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, domain.OpUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, domain.OpDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, domain.OpLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, domain.OpRight},
		{"vim j", runeKey("j"), domain.OpDown},
		{"vim k", runeKey("k"), domain.OpUp},
		{"vim h", runeKey("h"), domain.OpLeft},
		{"vim l", runeKey("l"), domain.OpRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, domain.OpEnter},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, domain.OpEnter},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, domain.OpBack},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, domain.OpBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, domain.OpNext},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, domain.OpPrev},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, domain.OpHome},
		{"digit", runeKey("7"), domain.OpNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, consumed := h.HandleKey(tt.msg)
			require.True(t, consumed)
			require.Len(t, actions, 1)
			assert.Equal(t, SignalAction{Op: tt.op}, actions[0])
		})
	}
}

func TestHandlerCommands(t *testing.T) {
	h := New()

	actions, consumed := h.HandleKey(runeKey("r"))
	assert.True(t, consumed)
	assert.Equal(t, []Action{RescanAction{}}, actions)

	actions, _ = h.HandleKey(runeKey("q"))
	assert.Equal(t, []Action{QuitAction{Force: false}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, []Action{QuitAction{Force: true}}, actions)

	actions, _ = h.HandleKey(runeKey("H"))
	assert.Equal(t, []Action{OpenPagerAction{}}, actions)

	actions, consumed = h.HandleKey(runeKey("x"))
	assert.False(t, consumed)
	assert.Empty(t, actions)
}

func TestHandlerHelpMode(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runeKey("?"))
	assert.Equal(t, []Action{ToggleHelpAction{}}, actions)
	assert.Equal(t, ModeHelp, h.CurrentMode())

	// navigation is swallowed while help is open
	actions, consumed := h.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, consumed)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []Action{ToggleHelpAction{}}, actions)
	assert.Equal(t, ModeNormal, h.CurrentMode())

	h.ChangeMode(ModeHelp)
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, []Action{QuitAction{Force: true}}, actions)

	h.Reset()
	assert.Equal(t, ModeNormal, h.CurrentMode())
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	assert.NotEmpty(t, k.ShortHelp())
	for _, column := range k.FullHelp() {
		for _, b := range column {
			assert.NotEmpty(t, b.Help().Key)
		}
	}
}

func TestFromDOM(t *testing.T) {
	tests := []struct {
		key   string
		code  int
		shift bool
		want  domain.Op
	}{
		{"ArrowLeft", 0, false, domain.OpLeft},
		{"", CodeUp, false, domain.OpUp},
		{"Right", 0, false, domain.OpRight},
		{"", CodeDown, false, domain.OpDown},
		{"OK", 0, false, domain.OpEnter},
		{"Enter", CodeEnter, false, domain.OpEnter},
		{"Spacebar", 0, false, domain.OpEnter},
		{"BrowserBack", 0, false, domain.OpBack},
		{"GoBack", 0, false, domain.OpBack},
		{"Escape", 0, false, domain.OpBack},
		{"", CodeReturn, false, domain.OpBack},
		{"Tab", CodeTab, false, domain.OpNext},
		{"Tab", CodeTab, true, domain.OpPrev},
		{"MediaPlayPause", 0, false, domain.OpMedia},
		{"", CodePlay, false, domain.OpMedia},
		{"Home", 0, false, domain.OpHome},
		{"3", 0, false, domain.OpNumeric},
		{"", 52, false, domain.OpNumeric},
		{"Unidentified", 229, false, domain.OpNone},
		// the key name wins over a conflicting code
		{"ArrowLeft", CodeRight, false, domain.OpLeft},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromDOM(tt.key, tt.code, tt.shift), "key=%q code=%d", tt.key, tt.code)
	}
}

func TestFromHardwareKey(t *testing.T) {
	assert.Equal(t, domain.OpBack, FromHardwareKey("back"))
	assert.Equal(t, domain.OpBack, FromHardwareKey("BACK"))
	assert.Equal(t, domain.OpNone, FromHardwareKey("menu"))
}

func TestParseToken(t *testing.T) {
	op, src := ParseToken("ArrowDown")
	assert.Equal(t, domain.OpDown, op)
	assert.Equal(t, domain.SourceKeyboard, src)

	op, src = ParseToken("10009")
	assert.Equal(t, domain.OpBack, op)
	assert.Equal(t, domain.SourceRemote, src)

	op, src = ParseToken("tizenhwkey:back")
	assert.Equal(t, domain.OpBack, op)
	assert.Equal(t, domain.SourceHardware, src)

	op, _ = ParseToken("Shift+Tab")
	assert.Equal(t, domain.OpPrev, op)

	op, src = ParseToken("5")
	assert.Equal(t, domain.OpNumeric, op)
	assert.Equal(t, domain.SourceKeyboard, src)
}

func TestRemoteKeys(t *testing.T) {
	keys := RemoteKeys()
	require.Len(t, keys, len(domCodes))

	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1].Code, keys[i].Code)
	}
	for _, k := range keys {
		assert.NotEmpty(t, k.Name, "code %d has no name", k.Code)
		assert.Equal(t, FromDOM("", k.Code, false), k.Op)
	}
}
