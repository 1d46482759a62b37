package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tvnav/internal/config"
	"tvnav/internal/domain"
	"tvnav/internal/eventbus"
	"tvnav/internal/focus"
	"tvnav/internal/input"
	"tvnav/internal/logic"
	uilogic "tvnav/internal/ui/logic"
	"tvnav/internal/ui/views"
	"tvnav/internal/watch"
)

// Model is the terminal host: it renders the open page's focusables as
// cards and applies the focus engine's side effects to them
type Model struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	logger  *zap.Logger
	session *logic.Session

	width    int
	height   int
	help     help.Model
	showHelp bool

	renderer     *views.Renderer
	viewport     *uilogic.Viewport
	inputHandler *input.Handler
	helpRender   *HelpRenderer
	helpOps      *HelpOps

	visual     map[string]bool
	focusedID  string
	status     string
	statusKind views.StatusKind
	turn       uint64

	watcher     *watch.PageWatcher
	watchCtx    context.Context
	watchCancel context.CancelFunc
	unsubscribe []func()

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. actions may be nil.
func NewModel(cfg *config.Config, bus eventbus.EventBus, actions *focus.ActionRegistry, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if bus == nil {
		bus = eventbus.New(logger)
	}

	m := &Model{
		cfg:          cfg,
		bus:          bus,
		logger:       logger,
		help:         help.New(),
		renderer:     views.NewRenderer(),
		viewport:     uilogic.NewViewport(20), // Will be updated on first WindowSizeMsg
		inputHandler: input.New(),
		visual:       make(map[string]bool),
		helpOps:      NewHelpOps(nil),
	}
	m.helpRender = NewHelpRenderer(m.inputHandler.Keys())
	m.session = logic.NewSession(logic.Options{
		Config:  cfg,
		Bus:     bus,
		Host:    m,
		Actions: actions,
		Logger:  logger,
	})
	m.watchCtx, m.watchCancel = context.WithCancel(context.Background())
	m.subscribe()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
	m.watchPage()
}

// Open shows a page
func (m *Model) Open(path string) error {
	if err := m.session.Open(path); err != nil {
		return err
	}
	m.pageOpened()
	return nil
}

// Session exposes the navigation session
func (m *Model) Session() *logic.Session {
	return m.session
}

func (m *Model) subscribe() {
	m.unsubscribe = append(m.unsubscribe,
		m.bus.Subscribe(eventbus.EventActivated, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ActivatedEvent); ok && ev.Action != "" {
				m.setStatus(fmt.Sprintf("Ran %s on %s", ev.Action, ev.Element.String()), views.StatusSuccess)
			}
		}),
		m.bus.Subscribe(eventbus.EventElementsChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ElementsChangedEvent); ok {
				m.setStatus(fmt.Sprintf("Rescanned: %d focusable elements", ev.Count), views.StatusInfo)
			}
		}),
		m.bus.Subscribe(eventbus.EventFocusChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.FocusChangedEvent); ok {
				m.logger.Debug("focus changed", zap.String("to", ev.To.ID))
			}
		}),
	)
}

// Close releases the watcher, the engine and the bus subscriptions
func (m *Model) Close() {
	m.watchCancel()
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	m.session.Close()
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.SetHeight(msg.Height - views.ReservedLines)

	case tea.KeyMsg:
		actions, _ := m.inputHandler.HandleKey(msg)
		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case pageChangedMsg:
		if msg.path == m.session.Page() {
			m.session.Rescan()
		}

	case helpPagerMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), views.StatusError)
		}

	case quitMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) processAction(action input.Action) tea.Cmd {
	switch a := action.(type) {
	case input.SignalAction:
		return m.dispatch(a.Op)

	case input.RescanAction:
		m.session.Rescan()

	case input.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case input.OpenPagerAction:
		content := m.helpRender.RenderHelpContent()
		return func() tea.Msg {
			return helpPagerMsg{err: m.helpOps.ShowHelpInPager(content)}
		}

	case input.QuitAction:
		m.logger.Info("quit requested", zap.Bool("force", a.Force))
		return tea.Quit
	}
	return nil
}

// dispatch sends one key press to the engine as its own event turn
func (m *Model) dispatch(op domain.Op) tea.Cmd {
	m.turn++
	before := m.session.Page()
	m.status = ""

	err := m.session.Dispatch(domain.Signal{Op: op, Source: domain.SourceKeyboard, Turn: m.turn})
	switch {
	case m.session.Exited():
		m.logger.Info("navigation exited", zap.String("page", before))
		return tea.Quit
	case errors.Is(err, logic.ErrExited):
		return tea.Quit
	case err != nil:
		m.setStatus(err.Error(), views.StatusError)
	}

	if m.session.Page() != before {
		m.pageOpened()
	}
	return nil
}

// pageOpened resets per-page view state after the session switched pages
func (m *Model) pageOpened() {
	m.visual = make(map[string]bool)
	if e := m.session.Engine(); e != nil {
		if cur, ok := e.Current(); ok {
			m.visual[cur.ID] = true
			m.focusedID = cur.ID
		} else {
			m.focusedID = ""
		}
	}
	m.viewport.Reset()
	m.watchPage()
}

// watchPage follows edits of the open page when watching is enabled
func (m *Model) watchPage() {
	if !m.cfg.UISettings.Watch || m.program == nil || m.session.Page() == "" {
		return
	}
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	path := m.session.Page()
	program := m.program
	w, err := watch.New(path, 0, func() { program.Send(pageChangedMsg{path: path}) }, m.logger)
	if err != nil {
		m.logger.Warn("page watch unavailable", zap.Error(err))
		return
	}
	if err := w.Start(m.watchCtx); err != nil {
		m.logger.Warn("page watch unavailable", zap.Error(err))
		w.Stop()
		return
	}
	m.watcher = w
}

func (m *Model) setStatus(msg string, kind views.StatusKind) {
	m.status = msg
	m.statusKind = kind
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Title:         m.session.Title(),
		Page:          m.session.Page(),
		Visual:        m.visual,
		StatusMessage: m.status,
		StatusKind:    m.statusKind,
		ShowHelp:      m.showHelp,
	}
	if e := m.session.Engine(); e != nil {
		state.Groups = views.Rows(e.Elements(), e.GroupOrder())
		if cur, ok := e.Current(); ok {
			state.Focused = &cur
		}
	}
	if m.showHelp {
		state.HelpContent = m.helpRender.RenderHelpContent()
	}
	if m.cfg.UISettings.ShowHelp {
		state.Footer = m.help.View(m.inputHandler.Keys())
	}
	return m.renderer.Render(state, m.viewport)
}

// SetFocusVisual marks or clears the focus class on a card
func (m *Model) SetFocusVisual(d domain.Descriptor, focused bool) {
	if focused {
		m.visual[d.ID] = true
		return
	}
	delete(m.visual, d.ID)
}

// Focus records the element holding terminal focus
func (m *Model) Focus(d domain.Descriptor) error {
	m.focusedID = d.ID
	return nil
}

// ScrollIntoView is applied when rendering; the viewport follows the focused card
func (m *Model) ScrollIntoView(domain.Descriptor) {}

// Click reports activation of an element without a link or registered action
func (m *Model) Click(d domain.Descriptor) error {
	m.setStatus("Activated "+d.String(), views.StatusSuccess)
	return nil
}

// FocusedID returns the element that last received terminal focus
func (m *Model) FocusedID() string {
	return m.focusedID
}

// Status returns the current status line text
func (m *Model) Status() string {
	return m.status
}
