package domain

import "fmt"

// Rect is an element's bounding box in the page's shared coordinate space
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Descriptor represents one navigable element of a view.
// The host owns the element; ID is the key it uses to find it again.
type Descriptor struct {
	ID       string
	Label    string
	Order    int    // authored position (data-focus-index)
	Decl     int    // declaration order, breaks Order ties
	Group    string // "" if ungrouped
	Row      *int
	Col      *int
	Geometry *Rect
	Disabled bool
	Action   string // named action dispatched on activation
	Primary  bool   // preferred initial focus
	Href     string
}

// HasGrid reports whether the element declares a grid position
func (d Descriptor) HasGrid() bool {
	return d.Row != nil || d.Col != nil
}

// GridPos returns row and column, treating a missing coordinate as 0
func (d Descriptor) GridPos() (int, int) {
	row, col := 0, 0
	if d.Row != nil {
		row = *d.Row
	}
	if d.Col != nil {
		col = *d.Col
	}
	return row, col
}

// String is used in logs and the inspect table
func (d Descriptor) String() string {
	if d.Label != "" {
		return fmt.Sprintf("%s (%s)", d.ID, d.Label)
	}
	return d.ID
}

// Layout is what a scope yields when scanned
type Layout struct {
	Elements   []Descriptor
	GroupOrder []string
}

// IntPtr is a convenience for building descriptors with grid positions
func IntPtr(v int) *int {
	return &v
}
