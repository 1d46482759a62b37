package input

import (
	"sort"
	"strconv"
	"strings"

	"tvnav/internal/domain"
)

// Remote and browser key codes
const (
	CodeTab        = 9
	CodeEnter      = 13
	CodePause      = 19
	CodeEscape     = 27
	CodeHome       = 36
	CodeLeft       = 37
	CodeUp         = 38
	CodeRight      = 39
	CodeDown       = 40
	CodeDigit0     = 48
	CodeDigit9     = 57
	CodeRewind     = 412
	CodeStop       = 413
	CodePlay       = 415
	CodeFastFwd    = 417
	CodeReturn     = 10009
	CodePlayPause  = 10252
	CodeBackspace  = 8
	hardwareBack   = "back"
	hardwareKeyTag = "tizenhwkey:"
)

var domKeys = map[string]domain.Op{
	"ArrowLeft":  domain.OpLeft,
	"Left":       domain.OpLeft,
	"ArrowUp":    domain.OpUp,
	"Up":         domain.OpUp,
	"ArrowRight": domain.OpRight,
	"Right":      domain.OpRight,
	"ArrowDown":  domain.OpDown,
	"Down":       domain.OpDown,

	"Enter":    domain.OpEnter,
	"OK":       domain.OpEnter,
	" ":        domain.OpEnter,
	"Spacebar": domain.OpEnter,

	"Escape":      domain.OpBack,
	"Esc":         domain.OpBack,
	"Backspace":   domain.OpBack,
	"BrowserBack": domain.OpBack,
	"GoBack":      domain.OpBack,
	"XF86Back":    domain.OpBack,

	"Tab": domain.OpNext,

	"MediaPlay":          domain.OpMedia,
	"MediaPause":         domain.OpMedia,
	"MediaPlayPause":     domain.OpMedia,
	"MediaStop":          domain.OpMedia,
	"MediaFastForward":   domain.OpMedia,
	"MediaRewind":        domain.OpMedia,
	"MediaTrackNext":     domain.OpMedia,
	"MediaTrackPrevious": domain.OpMedia,

	"Home": domain.OpHome,
}

var domCodes = map[int]domain.Op{
	CodeLeft:      domain.OpLeft,
	CodeUp:        domain.OpUp,
	CodeRight:     domain.OpRight,
	CodeDown:      domain.OpDown,
	CodeEnter:     domain.OpEnter,
	CodeEscape:    domain.OpBack,
	CodeBackspace: domain.OpBack,
	CodeReturn:    domain.OpBack,
	CodeTab:       domain.OpNext,
	CodeHome:      domain.OpHome,
	CodePause:     domain.OpMedia,
	CodeRewind:    domain.OpMedia,
	CodeStop:      domain.OpMedia,
	CodePlay:      domain.OpMedia,
	CodeFastFwd:   domain.OpMedia,
	CodePlayPause: domain.OpMedia,
}

var codeNames = map[int]string{
	CodeTab:       "Tab",
	CodeEnter:     "Enter",
	CodePause:     "Pause",
	CodeEscape:    "Escape",
	CodeHome:      "Home",
	CodeLeft:      "ArrowLeft",
	CodeUp:        "ArrowUp",
	CodeRight:     "ArrowRight",
	CodeDown:      "ArrowDown",
	CodeRewind:    "MediaRewind",
	CodeStop:      "MediaStop",
	CodePlay:      "MediaPlay",
	CodeFastFwd:   "MediaFastForward",
	CodeReturn:    "Return",
	CodePlayPause: "MediaPlayPause",
	CodeBackspace: "Backspace",
}

// RemoteKey is one entry of the key code table
type RemoteKey struct {
	Code int
	Name string
	Op   domain.Op
}

// RemoteKeys lists the recognized key codes in ascending order
func RemoteKeys() []RemoteKey {
	keys := make([]RemoteKey, 0, len(domCodes))
	for code, op := range domCodes {
		keys = append(keys, RemoteKey{Code: code, Name: codeNames[code], Op: op})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Code < keys[j].Code })
	return keys
}

// FromDOM normalizes a browser-style keydown. The key name wins over the
// code; shift turns Tab into a backwards step.
func FromDOM(keyName string, code int, shift bool) domain.Op {
	op, ok := domKeys[keyName]
	if !ok {
		switch {
		case len(keyName) == 1 && keyName[0] >= '0' && keyName[0] <= '9':
			op, ok = domain.OpNumeric, true
		case code >= CodeDigit0 && code <= CodeDigit9:
			op, ok = domain.OpNumeric, true
		default:
			op, ok = domCodes[code]
		}
	}
	if !ok {
		return domain.OpNone
	}
	if op == domain.OpNext && shift {
		return domain.OpPrev
	}
	return op
}

// FromHardwareKey normalizes a vendor hardware-key event name
func FromHardwareKey(name string) domain.Op {
	if strings.EqualFold(name, hardwareBack) {
		return domain.OpBack
	}
	return domain.OpNone
}

// ParseToken reads one scripted key: a DOM key name ("ArrowDown",
// "Shift+Tab"), a numeric key code ("10009") or a hardware key
// ("tizenhwkey:back"). It returns the op and the source that produced it.
func ParseToken(token string) (domain.Op, domain.Source) {
	token = strings.TrimSpace(token)
	if name, ok := strings.CutPrefix(token, hardwareKeyTag); ok {
		return FromHardwareKey(name), domain.SourceHardware
	}
	shift := false
	if rest, ok := strings.CutPrefix(token, "Shift+"); ok {
		shift, token = true, rest
	}
	if code, ok := parseCode(token); ok {
		return FromDOM("", code, shift), domain.SourceRemote
	}
	return FromDOM(token, -1, shift), domain.SourceKeyboard
}

// parseCode accepts multi-digit key codes; single digits are number keys
func parseCode(s string) (int, bool) {
	if len(s) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
