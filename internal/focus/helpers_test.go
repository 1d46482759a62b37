package focus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tvnav/internal/domain"
)

type recordingHost struct {
	visual   map[string]bool
	focused  []string
	scrolled []string
	clicked  []string

	focusErr     error
	panicOnClick bool
	panicScroll  bool
}

func newRecordingHost() *recordingHost {
	return &recordingHost{visual: make(map[string]bool)}
}

func (h *recordingHost) SetFocusVisual(d domain.Descriptor, focused bool) {
	if focused {
		h.visual[d.ID] = true
	} else {
		delete(h.visual, d.ID)
	}
}

func (h *recordingHost) Focus(d domain.Descriptor) error {
	h.focused = append(h.focused, d.ID)
	return h.focusErr
}

func (h *recordingHost) ScrollIntoView(d domain.Descriptor) {
	if h.panicScroll {
		panic("scroll not supported")
	}
	h.scrolled = append(h.scrolled, d.ID)
}

func (h *recordingHost) Click(d domain.Descriptor) error {
	if h.panicOnClick {
		panic("click not supported")
	}
	h.clicked = append(h.clicked, d.ID)
	return nil
}

func (h *recordingHost) visualIDs() []string {
	var ids []string
	for id := range h.visual {
		ids = append(ids, id)
	}
	return ids
}

func el(id string, order int) domain.Descriptor {
	return domain.Descriptor{ID: id, Order: order}
}

func grouped(id, group string, order int) domain.Descriptor {
	return domain.Descriptor{ID: id, Group: group, Order: order}
}

func cell(id, group string, row, col int) domain.Descriptor {
	return domain.Descriptor{ID: id, Group: group, Row: domain.IntPtr(row), Col: domain.IntPtr(col)}
}

// withDecl numbers descriptors in declaration order
func withDecl(ds ...domain.Descriptor) []domain.Descriptor {
	for i := range ds {
		ds[i].Decl = i
	}
	return ds
}

func newEngine(t *testing.T, layout domain.Layout, cfg Config) (*Engine, *recordingHost) {
	t.Helper()
	host := newRecordingHost()
	if cfg.Host == nil {
		cfg.Host = host
	}
	e, err := Initialize(NewStaticScope("view", layout), cfg)
	require.NoError(t, err)
	return e, host
}

func currentID(t *testing.T, e *Engine) string {
	t.Helper()
	cur, ok := e.Current()
	require.True(t, ok, "expected a focused element")
	return cur.ID
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type failingScope struct{}

func (failingScope) ID() string { return "broken" }

func (failingScope) Scan(string) (domain.Layout, error) {
	return domain.Layout{}, errors.New("document not loaded")
}
