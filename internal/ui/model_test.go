package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvnav/internal/config"
	"tvnav/internal/domain"
	"tvnav/internal/focus"
	"tvnav/internal/ui/views"
)

const (
	homeHTML = `<html><head><title>Home</title></head><body>
<main data-focus-container="true" data-group-order="menu,rail-0">
  <a id="nav-home" data-focusable="true" data-group="menu">Home</a>
  <a id="nav-plan" data-focusable="true" data-group="menu">My Plan</a>
  <a id="card-1" data-focusable="true" data-group="rail-0" data-row="0" data-col="0" href="video-detail.html">Episode 1</a>
  <a id="card-2" data-focusable="true" data-group="rail-0" data-row="0" data-col="1">Episode 2</a>
</main></body></html>`

	detailHTML = `<html><head><title>Detail</title></head><body>
<button id="play" data-focusable="true" data-action="play" data-primary="true">Play</button>
<button id="trailer" data-focusable="true">Trailer</button>
</body></html>`
)

func writePage(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestModel(t *testing.T, actions *focus.ActionRegistry) (*Model, string) {
	t.Helper()
	dir := t.TempDir()
	home := writePage(t, dir, "home.html", homeHTML)
	writePage(t, dir, "video-detail.html", detailHTML)

	cfg := config.DefaultConfig()
	cfg.Navigation.DebounceInterval = config.Duration{}
	m := NewModel(cfg, nil, actions, nil)
	t.Cleanup(m.Close)
	require.NoError(t, m.Open(home))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, dir
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func current(t *testing.T, m *Model) string {
	t.Helper()
	cur, ok := m.Session().Engine().Current()
	require.True(t, ok)
	return cur.ID
}

func TestModelMovesFocusWithKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.Equal(t, "nav-home", current(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "nav-plan", current(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "card-1", current(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	assert.Equal(t, "card-2", current(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "nav-plan", current(t, m))

	assert.Equal(t, map[string]bool{"nav-plan": true}, m.visual)
	assert.Equal(t, "nav-plan", m.FocusedID())
}

func TestModelEnterFollowsLink(t *testing.T) {
	m, dir := newTestModel(t, nil)
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "card-1", current(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, filepath.Join(dir, "video-detail.html"), m.Session().Page())
	assert.Equal(t, "play", current(t, m))
	assert.Equal(t, map[string]bool{"play": true}, m.visual)
}

func TestModelRunsRegisteredAction(t *testing.T) {
	actions := focus.NewActionRegistry()
	var played []string
	actions.Register("play", func(d domain.Descriptor) error {
		played = append(played, d.ID)
		return nil
	})
	m, dir := newTestModel(t, actions)
	require.NoError(t, m.Open(filepath.Join(dir, "video-detail.html")))

	press(m, tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, []string{"play"}, played)
	assert.Equal(t, "Ran play on play (Play)", m.Status())
	assert.Equal(t, views.StatusSuccess, m.statusKind)
}

func TestModelClickWithoutLinkSetsStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Activated nav-home (Home)", m.Status())
}

func TestModelBackRoutesAndExits(t *testing.T) {
	m, dir := newTestModel(t, nil)
	require.NoError(t, m.Open(filepath.Join(dir, "video-detail.html")))

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, isQuit(cmd))
	assert.Equal(t, filepath.Join(dir, "home.html"), m.Session().Page())

	// home routes to index.html, which is missing
	cmd = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Session().Exited())
}

func TestModelHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, m.showHelp)
	assert.Contains(t, views.StripANSI(m.View()), "tvnav Help")

	// navigation is swallowed while help is open
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "nav-home", current(t, m))

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
	assert.False(t, m.Session().Exited())
}

func TestModelRescanOnKeyAndFileChange(t *testing.T) {
	m, dir := newTestModel(t, nil)
	home := filepath.Join(dir, "home.html")
	writePage(t, dir, "home.html", `<html><body>
<a id="nav-home" data-focusable="true">Home</a>
</body></html>`)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Len(t, m.Session().Engine().Elements(), 1)
	assert.Equal(t, "Rescanned: 1 focusable elements", m.Status())

	writePage(t, dir, "home.html", homeHTML)
	m.Update(pageChangedMsg{path: home})
	assert.Len(t, m.Session().Engine().Elements(), 4)

	// edits to other pages are ignored
	m.Update(pageChangedMsg{path: filepath.Join(dir, "video-detail.html")})
	assert.Len(t, m.Session().Engine().Elements(), 4)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.True(t, isQuit(press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})))
	assert.True(t, isQuit(press(m, tea.KeyMsg{Type: tea.KeyCtrlC})))
}

func TestModelView(t *testing.T) {
	m := NewModel(nil, nil, nil, nil)
	t.Cleanup(m.Close)
	assert.Equal(t, "Loading...", m.View())

	m, _ = newTestModel(t, nil)
	out := views.StripANSI(m.View())
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "▶ menu (2)")
	assert.Contains(t, out, "rail-0 (2)")
	assert.Contains(t, out, "Episode 1")
	assert.Contains(t, out, "Focused: nav-home (Home)")
}

func TestHelpContentListsBindings(t *testing.T) {
	m := NewModel(nil, nil, nil, nil)
	t.Cleanup(m.Close)
	content := views.StripANSI(m.helpRender.RenderHelpContent())

	for _, want := range []string{"Navigation", "Activation", "activate", "back", "rescan", "quit"} {
		assert.Contains(t, content, want)
	}
}
