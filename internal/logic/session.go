// Package logic drives navigation across pages: one focus engine per open
// page, link following on activation and back routing between pages.
package logic

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"tvnav/internal/config"
	"tvnav/internal/domain"
	"tvnav/internal/eventbus"
	"tvnav/internal/focus"
	"tvnav/internal/scan"
)

// ErrExited is returned once back navigation has left the first page
var ErrExited = errors.New("navigation exited")

// Options configures a session
type Options struct {
	Config    *config.Config
	Bus       eventbus.EventBus
	Host      focus.Host
	Actions   *focus.ActionRegistry
	Intercept focus.InterceptFunc
	Logger    *zap.Logger
	Now       func() time.Time
}

// Session owns the page currently shown and the engine bound to it.
// Page changes requested while a signal is being handled are applied
// after the engine has finished with that signal.
type Session struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	host    focus.Host
	actions *focus.ActionRegistry
	hook    focus.InterceptFunc
	logger  *zap.Logger
	now     func() time.Time

	manager *focus.Manager
	engine  *focus.Engine
	page    *scan.FileScope
	title   string
	history History

	pending string
	exiting bool
	exited  bool
	// turn that replaced the page; later signals of that turn were meant for the old page
	switchTurn uint64
}

// NewSession creates a session with no page open
func NewSession(opts Options) *Session {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bus == nil {
		opts.Bus = eventbus.New(opts.Logger)
	}
	if opts.Host == nil {
		opts.Host = focus.NopHost{}
	}
	if opts.Actions == nil {
		opts.Actions = focus.NewActionRegistry()
	}
	return &Session{
		cfg:     opts.Config,
		bus:     opts.Bus,
		host:    opts.Host,
		actions: opts.Actions,
		hook:    opts.Intercept,
		logger:  opts.Logger,
		now:     opts.Now,
		manager: focus.NewManager(),
	}
}

// Open shows a page, replacing the one currently open
func (s *Session) Open(path string) error {
	if s.exited {
		return ErrExited
	}
	scope, err := scan.NewFileScope(path, s.cfg.Scan.ContainerSelector)
	if err != nil {
		return err
	}
	doc, err := scope.Load()
	if err != nil {
		return err
	}

	engine, err := s.manager.Initialize(scope, focus.Config{
		FocusableSelector: s.cfg.Scan.FocusableSelector,
		PrimaryID:         s.cfg.Scan.PrimaryID,
		DebounceInterval:  s.cfg.Navigation.DebounceInterval.Duration,
		BackDedupWindow:   s.cfg.Navigation.BackDedupWindow.Duration,
		Spatial:           s.cfg.Navigation.Spatial,
		Host:              linkHost{Host: s.host, session: s},
		Actions:           s.actions,
		Back:              s.back,
		Intercept:         s.hook,
		Bus:               s.bus,
		Logger:            s.logger,
		Now:               s.now,
	})
	if err != nil {
		return err
	}

	if s.engine != nil && s.engine.ScopeID() != scope.ID() {
		s.engine.Teardown()
	}
	s.engine = engine
	s.page = scope
	s.title = doc.Title()
	s.history.Push(scope.Path())

	s.logger.Info("page opened",
		zap.String("page", scope.Path()),
		zap.Int("elements", len(engine.Elements())))
	return nil
}

// Dispatch publishes one input signal for the open page, then applies any
// page change it caused
func (s *Session) Dispatch(sig domain.Signal) error {
	if s.exited {
		return ErrExited
	}
	if s.engine == nil {
		return fmt.Errorf("no page open")
	}
	if sig.Turn != 0 && sig.Turn == s.switchTurn {
		return nil
	}
	s.bus.Publish(domain.InputEvent{Scope: s.engine.ScopeID(), Signal: sig})
	return s.settle(sig.Turn)
}

// Rescan re-reads the open page
func (s *Session) Rescan() {
	if s.engine == nil {
		return
	}
	s.engine.Rescan()
	if doc, err := s.page.Load(); err == nil {
		s.title = doc.Title()
	}
}

func (s *Session) settle(turn uint64) error {
	if s.exiting {
		s.exiting = false
		s.Close()
		s.exited = true
		return nil
	}
	if s.pending == "" {
		return nil
	}
	target := s.pending
	s.pending = ""
	s.switchTurn = turn
	if err := s.Open(target); err != nil {
		s.logger.Warn("failed to open page", zap.String("page", target), zap.Error(err))
		return err
	}
	return nil
}

// back follows the configured route for the current page. When there is
// no page to go back to the session exits.
func (s *Session) back(_ *domain.Descriptor) {
	if s.page == nil {
		return
	}
	route := s.cfg.Back.RouteFor(s.page.Path())
	target, ok := s.resolve(route)
	if !ok || target == s.page.Path() {
		s.logger.Debug("back leaves navigation", zap.String("page", s.page.Path()))
		s.exiting = true
		return
	}
	s.pending = target
}

// follow queues the page a link points to
func (s *Session) follow(href string) bool {
	target, ok := s.resolve(href)
	if !ok {
		return false
	}
	s.pending = target
	return true
}

// resolve maps a relative page reference to an existing file next to the open page
func (s *Session) resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || s.page == nil {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	target := filepath.FromSlash(u.Path)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(s.page.Path()), target)
	}
	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return "", false
	}
	return filepath.Clean(target), true
}

// Close tears down the engine of the open page
func (s *Session) Close() {
	s.manager.Close()
	s.engine = nil
}

// Engine returns the engine bound to the open page
func (s *Session) Engine() *focus.Engine {
	return s.engine
}

// Page returns the path of the open page
func (s *Session) Page() string {
	if s.page == nil {
		return ""
	}
	return s.page.Path()
}

func (s *Session) Title() string {
	return s.title
}

// Exited reports whether back navigation has left the app
func (s *Session) Exited() bool {
	return s.exited
}

// History returns the pages opened so far, oldest first
func (s *Session) History() []string {
	return s.history.Pages()
}

func (s *Session) Bus() eventbus.EventBus {
	return s.bus
}

// linkHost follows href links on activation before falling back to the host click
type linkHost struct {
	focus.Host
	session *Session
}

func (h linkHost) Click(d domain.Descriptor) error {
	if h.session.follow(d.Href) {
		return nil
	}
	return h.Host.Click(d)
}
