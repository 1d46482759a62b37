package focus

import (
	"time"

	"go.uber.org/zap"

	"tvnav/internal/domain"
	"tvnav/internal/eventbus"
)

// Scope is the part of a view the engine navigates.
// ID must be stable for the lifetime of the view.
type Scope interface {
	ID() string
	Scan(selector string) (domain.Layout, error)
}

// Host applies focus side effects to the elements it owns.
// Errors and panics from these calls never interrupt navigation.
type Host interface {
	SetFocusVisual(d domain.Descriptor, focused bool)
	Focus(d domain.Descriptor) error
	ScrollIntoView(d domain.Descriptor)
	Click(d domain.Descriptor) error
}

// BackPolicy decides what a back signal does; the engine has no routing of its own
type BackPolicy func(current *domain.Descriptor)

// InterceptFunc may claim an op before the default handling runs.
// Returning true stops the engine from handling it.
type InterceptFunc func(op domain.Op, current *domain.Descriptor) bool

// Outcome is the result of a focus move
type Outcome int

const (
	NoMovement Outcome = iota
	Moved
)

func (o Outcome) String() string {
	if o == Moved {
		return "moved"
	}
	return "no movement"
}

// Config configures one engine
type Config struct {
	FocusableSelector string
	PrimaryID         string
	DebounceInterval  time.Duration
	BackDedupWindow   time.Duration
	Spatial           bool

	Host      Host
	Actions   *ActionRegistry
	Back      BackPolicy
	Intercept InterceptFunc
	Bus       eventbus.EventBus
	Logger    *zap.Logger
	Now       func() time.Time
}

// DefaultSelector matches elements marked data-focusable="true"
const DefaultSelector = `[data-focusable="true"]`

func (c *Config) setDefaults() {
	if c.FocusableSelector == "" {
		c.FocusableSelector = DefaultSelector
	}
	if c.Host == nil {
		c.Host = NopHost{}
	}
	if c.Actions == nil {
		c.Actions = NewActionRegistry()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// NopHost ignores every side effect
type NopHost struct{}

func (NopHost) SetFocusVisual(domain.Descriptor, bool) {}
func (NopHost) Focus(domain.Descriptor) error          { return nil }
func (NopHost) ScrollIntoView(domain.Descriptor)       {}
func (NopHost) Click(domain.Descriptor) error          { return nil }
