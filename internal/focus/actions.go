package focus

import (
	"sort"
	"sync"

	"tvnav/internal/domain"
)

// ActionHandler runs a named action for the activated element
type ActionHandler func(d domain.Descriptor) error

// ActionRegistry maps action names (data-action) to handlers
type ActionRegistry struct {
	mu       sync.RWMutex
	handlers map[string]ActionHandler
}

// NewActionRegistry creates an empty registry
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{handlers: make(map[string]ActionHandler)}
}

// Register binds a handler to an action name, replacing any previous one
func (r *ActionRegistry) Register(name string, h ActionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Unregister removes the handler for an action name
func (r *ActionRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Lookup returns the handler for an action name
func (r *ActionRegistry) Lookup(name string) (ActionHandler, bool) {
	if name == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists registered actions in sorted order
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
