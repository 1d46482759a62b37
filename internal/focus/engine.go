package focus

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tvnav/internal/domain"
	"tvnav/internal/eventbus"
)

// Engine owns the navigation state of one view.
// All methods are meant to be called from the view's event loop.
type Engine struct {
	scope  Scope
	cfg    Config
	logger *zap.Logger

	state *State

	mu         sync.Mutex
	detach     []func()
	closed     bool
	onTeardown func()

	debounce debouncer
	dedupe   backDeduper
}

// Initialize scans the scope and applies initial focus.
// A scope without focusable elements yields an engine with empty state.
func Initialize(scope Scope, cfg Config) (*Engine, error) {
	if scope == nil {
		return nil, configError("scope is required", nil)
	}
	cfg.setDefaults()

	layout, err := scope.Scan(cfg.FocusableSelector)
	if err != nil {
		return nil, configError(fmt.Sprintf("scanning scope %q", scope.ID()), err)
	}

	e := &Engine{
		scope:    scope,
		cfg:      cfg,
		logger:   cfg.Logger.With(zap.String("scope", scope.ID())),
		state:    newState(layout),
		debounce: debouncer{interval: cfg.DebounceInterval},
		dedupe:   backDeduper{window: cfg.BackDedupWindow},
	}

	e.logger.Debug("navigation initialized",
		zap.Int("elements", e.state.Len()),
		zap.Strings("groups", e.state.groupOrder))

	if idx := e.initialIndex(); idx >= 0 {
		e.focusIndex(idx, nil)
	}

	if cfg.Bus != nil {
		e.Attach(cfg.Bus)
	}

	return e, nil
}

// initialIndex picks the configured primary element, then a data-primary one, then the first
func (e *Engine) initialIndex() int {
	if e.state.Len() == 0 {
		return -1
	}
	if e.cfg.PrimaryID != "" {
		if i := e.state.indexOf(e.cfg.PrimaryID); i >= 0 {
			return i
		}
	}
	for i, d := range e.state.elements {
		if d.Primary {
			return i
		}
	}
	return 0
}

// ScopeID returns the ID of the scope this engine navigates
func (e *Engine) ScopeID() string {
	return e.scope.ID()
}

// Current returns the focused element
func (e *Engine) Current() (domain.Descriptor, bool) {
	return e.state.Current()
}

// Elements returns the focusable elements in navigation order
func (e *Engine) Elements() []domain.Descriptor {
	return e.state.Elements()
}

// GroupOrder returns the inter-group traversal order
func (e *Engine) GroupOrder() []string {
	return e.state.GroupOrder()
}

// State exposes the navigation state for inspection
func (e *Engine) State() *State {
	return e.state
}

// Closed reports whether Teardown ran
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// MoveFocus resolves and applies a directional move
func (e *Engine) MoveFocus(dir domain.Direction) Outcome {
	if e.Closed() {
		return NoMovement
	}
	target, ok := e.state.resolve(dir, e.cfg.Spatial)
	if !ok {
		e.logger.Debug("no focus target", zap.String("direction", string(dir)))
		return NoMovement
	}
	return e.moveTo(target)
}

// Step moves linearly through all elements regardless of topology, wrapping around
func (e *Engine) Step(delta int) Outcome {
	if e.Closed() {
		return NoMovement
	}
	target, ok := e.state.step(delta)
	if !ok {
		return NoMovement
	}
	return e.moveTo(target)
}

// FocusByID focuses a specific element
func (e *Engine) FocusByID(id string) Outcome {
	if e.Closed() {
		return NoMovement
	}
	target := e.state.indexOf(id)
	if target < 0 || target == e.state.current {
		return NoMovement
	}
	return e.moveTo(target)
}

func (e *Engine) moveTo(target int) Outcome {
	prev, _ := e.state.Current()
	e.focusIndex(target, &prev)
	return Moved
}

// focusIndex updates state first, then runs host side effects
func (e *Engine) focusIndex(i int, prev *domain.Descriptor) {
	e.state.setCurrent(i)
	next := e.state.elements[i]

	if prev != nil {
		p := *prev
		e.guard("clear focus visual", func() error {
			e.cfg.Host.SetFocusVisual(p, false)
			return nil
		})
	}
	e.guard("apply focus visual", func() error {
		e.cfg.Host.SetFocusVisual(next, true)
		return nil
	})
	e.guard("focus element", func() error {
		return e.cfg.Host.Focus(next)
	})
	e.guard("scroll into view", func() error {
		e.cfg.Host.ScrollIntoView(next)
		return nil
	})

	e.logger.Debug("focus moved", zap.String("to", next.ID))
	e.publish(domain.FocusChangedEvent{Scope: e.scope.ID(), From: prev, To: next})
}

// Activate runs the focused element's registered action, or clicks it
func (e *Engine) Activate() {
	if e.Closed() {
		return
	}
	cur, ok := e.state.Current()
	if !ok {
		return
	}

	if h, found := e.cfg.Actions.Lookup(cur.Action); found {
		e.guard("action "+cur.Action, func() error { return h(cur) })
		e.publish(domain.ActivatedEvent{Scope: e.scope.ID(), Element: cur, Action: cur.Action})
		return
	}

	e.guard("click", func() error { return e.cfg.Host.Click(cur) })
	e.publish(domain.ActivatedEvent{Scope: e.scope.ID(), Element: cur})
}

// GoBack hands the back request to the host policy, exactly once
func (e *Engine) GoBack() {
	e.goBack(domain.SourceScript)
}

func (e *Engine) goBack(source domain.Source) {
	if e.Closed() {
		return
	}
	var current *domain.Descriptor
	if cur, ok := e.state.Current(); ok {
		current = &cur
	}

	e.publish(domain.BackRequestedEvent{Scope: e.scope.ID(), Source: source})
	if e.cfg.Back == nil {
		e.logger.Debug("back requested without a back policy")
		return
	}
	e.guard("back policy", func() error {
		e.cfg.Back(current)
		return nil
	})
}

// Rescan re-enumerates the scope after its content changed.
// The focused element keeps focus when it still exists, otherwise focus falls back to the first element.
func (e *Engine) Rescan() {
	if e.Closed() {
		return
	}
	layout, err := e.scope.Scan(e.cfg.FocusableSelector)
	if err != nil {
		e.logger.Warn("rescan failed, keeping previous elements", zap.Error(err))
		return
	}

	prev, hadFocus := e.state.Current()
	last := e.state.lastInGroup
	e.state = newState(layout)
	for g, pos := range last {
		if n := len(e.state.members(g)); n > 0 {
			e.state.lastInGroup[g] = clamp(pos, 0, n-1)
		}
	}

	e.publish(domain.ElementsChangedEvent{Scope: e.scope.ID(), Count: e.state.Len()})

	if e.state.Len() == 0 {
		e.state.current = -1
		return
	}
	if hadFocus {
		if i := e.state.indexOf(prev.ID); i >= 0 {
			e.state.setCurrent(i)
			next := e.state.elements[i]
			e.guard("apply focus visual", func() error {
				e.cfg.Host.SetFocusVisual(next, true)
				return nil
			})
			return
		}
		e.focusIndex(0, &prev)
		return
	}
	e.focusIndex(0, nil)
}

// Attach subscribes the engine to input events on a bus; Teardown detaches it
func (e *Engine) Attach(bus eventbus.EventBus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	unsub := bus.Subscribe(eventbus.EventInput, func(ev eventbus.DomainEvent) {
		in, ok := ev.(eventbus.InputEvent)
		if !ok || (in.Scope != "" && in.Scope != e.scope.ID()) {
			return
		}
		e.Handle(in.Signal)
	})
	e.detach = append(e.detach, unsub)
}

// Handle routes one normalized input signal. It reports whether the signal was consumed.
func (e *Engine) Handle(sig domain.Signal) bool {
	if e.Closed() || sig.Op == domain.OpNone {
		return false
	}
	if sig.Op.Ignored() {
		return true
	}

	now := e.cfg.Now()
	switch sig.Op {
	case domain.OpBack:
		if e.dedupe.duplicate(sig, now) {
			e.logger.Debug("duplicate back signal dropped", zap.String("source", string(sig.Source)))
			return true
		}
	case domain.OpEnter:
	default:
		if e.debounce.suppress(now) {
			return true
		}
	}

	if e.intercepted(sig.Op) {
		return true
	}

	switch sig.Op {
	case domain.OpEnter:
		e.Activate()
	case domain.OpBack:
		e.goBack(sig.Source)
	case domain.OpNext:
		e.Step(1)
	case domain.OpPrev:
		e.Step(-1)
	default:
		if dir, ok := sig.Op.Direction(); ok {
			e.MoveFocus(dir)
		}
	}
	return true
}

func (e *Engine) intercepted(op domain.Op) bool {
	if e.cfg.Intercept == nil {
		return false
	}
	var current *domain.Descriptor
	if cur, ok := e.state.Current(); ok {
		current = &cur
	}
	stop := false
	e.guard("intercept", func() error {
		stop = e.cfg.Intercept(op, current)
		return nil
	})
	return stop
}

// Teardown detaches all input listeners. Calling it again is a no-op.
func (e *Engine) Teardown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	detach := e.detach
	e.detach = nil
	onTeardown := e.onTeardown
	e.mu.Unlock()

	for _, d := range detach {
		d()
	}
	if onTeardown != nil {
		onTeardown()
	}
	e.logger.Debug("navigation torn down")
	e.publish(domain.NavigationClosedEvent{Scope: e.scope.ID()})
}

func (e *Engine) publish(ev eventbus.DomainEvent) {
	if e.cfg.Bus != nil {
		e.cfg.Bus.Publish(ev)
	}
}

// guard runs a host callback, swallowing its error or panic
func (e *Engine) guard(what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("host callback panicked", zap.String("callback", what), zap.Any("panic", r))
		}
	}()
	if err := fn(); err != nil {
		e.logger.Debug("host callback failed", zap.String("callback", what), zap.Error(err))
	}
}
