package logic

// Viewport is a scrolling window over rendered lines
type Viewport struct {
	offset int
	height int
}

// NewViewport creates a viewport showing height lines
func NewViewport(height int) *Viewport {
	v := &Viewport{}
	v.SetHeight(height)
	return v
}

// SetHeight changes the number of visible lines; at least one line is shown
func (v *Viewport) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	v.height = height
}

func (v *Viewport) Height() int {
	return v.height
}

func (v *Viewport) Offset() int {
	return v.offset
}

// Reset scrolls back to the top
func (v *Viewport) Reset() {
	v.offset = 0
}

// EnsureVisible scrolls the least needed to show lines top..bottom of total.
// A span taller than the window is shown from its top.
func (v *Viewport) EnsureVisible(top, bottom, total int) {
	switch {
	case top < v.offset:
		v.offset = top
	case bottom-top+1 > v.height:
		v.offset = top
	case bottom >= v.offset+v.height:
		v.offset = bottom - v.height + 1
	}
	v.clamp(total)
}

func (v *Viewport) clamp(total int) {
	maxOffset := total - v.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// Window returns the visible lines and how many lines are hidden above and below
func (v *Viewport) Window(lines []string) (visible []string, above, below int) {
	v.clamp(len(lines))
	end := v.offset + v.height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[v.offset:end], v.offset, len(lines) - end
}
