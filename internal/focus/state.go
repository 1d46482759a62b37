package focus

import (
	"sort"

	"tvnav/internal/domain"
)

// State is the navigation state of one view
type State struct {
	elements    []domain.Descriptor
	groupOrder  []string
	current     int
	lastInGroup map[string]int // group -> last focused position within the group
}

// newState builds a sorted state from a scanned layout, dropping disabled elements
func newState(layout domain.Layout) *State {
	elements := make([]domain.Descriptor, 0, len(layout.Elements))
	for _, d := range layout.Elements {
		if d.Disabled {
			continue
		}
		elements = append(elements, d)
	}

	groupOrder := buildGroupOrder(layout.GroupOrder, elements)
	rank := make(map[string]int, len(groupOrder))
	for i, g := range groupOrder {
		rank[g] = i
	}
	groupRank := func(d domain.Descriptor) int {
		if r, ok := rank[d.Group]; ok {
			return r
		}
		return len(groupOrder)
	}

	sort.SliceStable(elements, func(i, j int) bool {
		a, b := elements[i], elements[j]
		if ra, rb := groupRank(a), groupRank(b); ra != rb {
			return ra < rb
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Decl < b.Decl
	})

	current := -1
	if len(elements) > 0 {
		current = 0
	}

	return &State{
		elements:    elements,
		groupOrder:  groupOrder,
		current:     current,
		lastInGroup: make(map[string]int),
	}
}

// buildGroupOrder keeps the declared order for groups that have elements
// and appends undeclared groups in order of first appearance
func buildGroupOrder(declared []string, elements []domain.Descriptor) []string {
	present := make(map[string]bool)
	var appearance []string
	for _, d := range elements {
		if d.Group == "" || present[d.Group] {
			continue
		}
		present[d.Group] = true
		appearance = append(appearance, d.Group)
	}

	seen := make(map[string]bool)
	order := make([]string, 0, len(appearance))
	for _, g := range declared {
		if present[g] && !seen[g] {
			seen[g] = true
			order = append(order, g)
		}
	}
	for _, g := range appearance {
		if !seen[g] {
			seen[g] = true
			order = append(order, g)
		}
	}
	return order
}

// Len returns the number of focusable elements
func (s *State) Len() int {
	return len(s.elements)
}

// Current returns the focused element, if any
func (s *State) Current() (domain.Descriptor, bool) {
	if s.current < 0 || s.current >= len(s.elements) {
		return domain.Descriptor{}, false
	}
	return s.elements[s.current], true
}

// CurrentIndex returns the focused index or -1 when empty
func (s *State) CurrentIndex() int {
	return s.current
}

// Elements returns a copy of the sorted element list
func (s *State) Elements() []domain.Descriptor {
	out := make([]domain.Descriptor, len(s.elements))
	copy(out, s.elements)
	return out
}

// GroupOrder returns a copy of the inter-group traversal order
func (s *State) GroupOrder() []string {
	out := make([]string, len(s.groupOrder))
	copy(out, s.groupOrder)
	return out
}

// LastInGroup returns the remembered position for a group (0 if never visited)
func (s *State) LastInGroup(group string) int {
	return s.lastInGroup[group]
}

func (s *State) indexOf(id string) int {
	for i, d := range s.elements {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// members returns element indices of a group in element order
func (s *State) members(group string) []int {
	var idx []int
	for i, d := range s.elements {
		if d.Group == group {
			idx = append(idx, i)
		}
	}
	return idx
}

func (s *State) groupIndex(group string) int {
	if group == "" {
		return -1
	}
	for i, g := range s.groupOrder {
		if g == group {
			return i
		}
	}
	return -1
}

// setCurrent moves the cursor and remembers the position within the element's group
func (s *State) setCurrent(i int) {
	s.current = i
	d := s.elements[i]
	if d.Group == "" {
		return
	}
	for pos, m := range s.members(d.Group) {
		if m == i {
			s.lastInGroup[d.Group] = pos
			return
		}
	}
}
