package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"tvnav/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventInput            = domain.EventInput
	EventFocusChanged     = domain.EventFocusChanged
	EventActivated        = domain.EventActivated
	EventBackRequested    = domain.EventBackRequested
	EventElementsChanged  = domain.EventElementsChanged
	EventNavigationClosed = domain.EventNavigationClosed
	EventError            = domain.EventError
)

// Re-export domain event types
type InputEvent = domain.InputEvent
type FocusChangedEvent = domain.FocusChangedEvent
type ActivatedEvent = domain.ActivatedEvent
type BackRequestedEvent = domain.BackRequestedEvent
type ElementsChangedEvent = domain.ElementsChangedEvent
type NavigationClosedEvent = domain.NavigationClosedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Handlers run on the publisher's goroutine, in subscription order.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *zap.Logger
}

// New creates a new event bus
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger,
	}
}

// Publish delivers an event to every subscriber of its type
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}
	// Input events arrive on every key press
	if event.Type() != EventInput {
		b.logger.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.call(sub.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type.
// The returned function removes the subscription and is safe to call more than once.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.handlers[eventType]) == 0 {
			delete(b.handlers, eventType)
		}
	}
}

// SubscriberCount returns how many handlers listen for an event type
func SubscriberCount(b EventBus, eventType EventType) int {
	impl, ok := b.(*bus)
	if !ok {
		return -1
	}
	impl.mu.RLock()
	defer impl.mu.RUnlock()
	return len(impl.handlers[eventType])
}
