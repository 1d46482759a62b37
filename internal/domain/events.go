package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventInput            EventType = "Input"
	EventFocusChanged     EventType = "FocusChanged"
	EventActivated        EventType = "Activated"
	EventBackRequested    EventType = "BackRequested"
	EventElementsChanged  EventType = "ElementsChanged"
	EventNavigationClosed EventType = "NavigationClosed"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// InputEvent carries a normalized input signal to attached engines
type InputEvent struct {
	Scope  string // "" targets every attached engine
	Signal Signal
}

func (e InputEvent) Type() EventType { return EventInput }

// FocusChangedEvent is emitted after focus moved to a different element
type FocusChangedEvent struct {
	Scope string
	From  *Descriptor // nil on initial focus
	To    Descriptor
}

func (e FocusChangedEvent) Type() EventType { return EventFocusChanged }

// ActivatedEvent is emitted when the focused element was activated
type ActivatedEvent struct {
	Scope   string
	Element Descriptor
	Action  string // "" when the default click ran
}

func (e ActivatedEvent) Type() EventType { return EventActivated }

// BackRequestedEvent is emitted once per logical back press
type BackRequestedEvent struct {
	Scope  string
	Source Source
}

func (e BackRequestedEvent) Type() EventType { return EventBackRequested }

// ElementsChangedEvent is emitted after a rescan
type ElementsChangedEvent struct {
	Scope string
	Count int
}

func (e ElementsChangedEvent) Type() EventType { return EventElementsChanged }

// NavigationClosedEvent is emitted when an engine is torn down
type NavigationClosedEvent struct {
	Scope string
}

func (e NavigationClosedEvent) Type() EventType { return EventNavigationClosed }

// ErrorEvent is emitted when a host callback fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
