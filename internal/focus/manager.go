package focus

import "sync"

// Manager keeps at most one engine per scope.
// Initializing a scope again tears down the engine previously bound to it,
// so listeners never accumulate across view re-initialization.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{engines: make(map[string]*Engine)}
}

// Initialize replaces any engine bound to the scope with a new one
func (m *Manager) Initialize(scope Scope, cfg Config) (*Engine, error) {
	if scope == nil {
		return nil, configError("scope is required", nil)
	}
	id := scope.ID()

	m.mu.Lock()
	prior := m.engines[id]
	m.mu.Unlock()
	if prior != nil {
		prior.Teardown()
	}

	e, err := Initialize(scope, cfg)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.onTeardown = func() { m.forget(id, e) }
	e.mu.Unlock()

	m.mu.Lock()
	m.engines[id] = e
	m.mu.Unlock()
	return e, nil
}

// Engine returns the live engine for a scope
func (m *Manager) Engine(scopeID string) (*Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[scopeID]
	return e, ok
}

// Len returns the number of live engines
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.engines)
}

// Teardown tears down the engine bound to a scope, if any
func (m *Manager) Teardown(scopeID string) {
	if e, ok := m.Engine(scopeID); ok {
		e.Teardown()
	}
}

// Close tears down every engine
func (m *Manager) Close() {
	m.mu.Lock()
	engines := make([]*Engine, 0, len(m.engines))
	for _, e := range m.engines {
		engines = append(engines, e)
	}
	m.mu.Unlock()

	for _, e := range engines {
		e.Teardown()
	}
}

func (m *Manager) forget(id string, e *Engine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engines[id] == e {
		delete(m.engines, id)
	}
}
