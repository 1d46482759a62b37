package focus

import (
	"sync"

	"tvnav/internal/domain"
)

// StaticScope serves a layout supplied directly by the host.
// SetLayout followed by Engine.Rescan models dynamic content changes.
type StaticScope struct {
	id string

	mu     sync.RWMutex
	layout domain.Layout
}

// NewStaticScope creates a scope over a fixed set of descriptors
func NewStaticScope(id string, layout domain.Layout) *StaticScope {
	return &StaticScope{id: id, layout: layout}
}

func (s *StaticScope) ID() string {
	return s.id
}

// Scan returns the current layout; the selector is ignored
func (s *StaticScope) Scan(string) (domain.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.Layout{
		Elements:   make([]domain.Descriptor, len(s.layout.Elements)),
		GroupOrder: make([]string, len(s.layout.GroupOrder)),
	}
	copy(out.Elements, s.layout.Elements)
	copy(out.GroupOrder, s.layout.GroupOrder)
	return out, nil
}

// SetLayout replaces the layout returned by the next scan
func (s *StaticScope) SetLayout(layout domain.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = layout
}
