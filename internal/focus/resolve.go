package focus

import (
	"math"

	"tvnav/internal/domain"
)

// resolve finds the target index for a move from the current element.
// Grid, spatial and group resolution clamp at their boundaries. A grid miss
// falls through to group resolution for vertical moves only. Only an
// element without any structural metadata falls back to wrapping linear moves.
func (s *State) resolve(dir domain.Direction, spatial bool) (int, bool) {
	if len(s.elements) == 0 || s.current < 0 {
		return -1, false
	}

	structured := false
	if s.gridApplies() {
		structured = true
		if t, ok := s.resolveGrid(dir); ok {
			return t, true
		}
		// a row ends at its last cell; only vertical moves may leave the grid for another group
		if dir.Horizontal() {
			return -1, false
		}
	}
	if spatial && s.spatialApplies() {
		structured = true
		if t, ok := s.resolveSpatial(dir); ok {
			return t, true
		}
	}
	if s.groupApplies() {
		structured = true
		if t, ok := s.resolveGroup(dir); ok {
			return t, true
		}
	}
	if structured {
		return -1, false
	}
	return s.resolveLinear(dir.Backward())
}

// gridApplies requires the current element and at least one sibling in its group to carry row/col
func (s *State) gridApplies() bool {
	cur := s.elements[s.current]
	if !cur.HasGrid() {
		return false
	}
	for i, d := range s.elements {
		if i != s.current && d.Group == cur.Group && d.HasGrid() {
			return true
		}
	}
	return false
}

func (s *State) resolveGrid(dir domain.Direction) (int, bool) {
	cur := s.elements[s.current]
	curRow, curCol := cur.GridPos()

	best, bestScore := -1, math.MaxInt
	for i, d := range s.elements {
		if i == s.current || d.Group != cur.Group || !d.HasGrid() {
			continue
		}
		row, col := d.GridPos()
		dr, dc := row-curRow, col-curCol
		if !inHalfPlane(dir, dr, dc) {
			continue
		}
		score := weightedDistance(dir, abs(dr), abs(dc))
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func (s *State) spatialApplies() bool {
	cur := s.elements[s.current]
	return cur.Geometry != nil && !cur.HasGrid()
}

// resolveSpatial picks the nearest element lying entirely beyond the current
// element's edge in the queried direction, scoring centers with the same axis
// weighting as grid resolution
func (s *State) resolveSpatial(dir domain.Direction) (int, bool) {
	cur := *s.elements[s.current].Geometry
	cx, cy := cur.Center()

	best, bestScore := -1, math.Inf(1)
	for i, d := range s.elements {
		if i == s.current || d.Geometry == nil || !beyondEdge(dir, cur, *d.Geometry) {
			continue
		}
		x, y := d.Geometry.Center()
		primary, secondary := math.Abs(y-cy), math.Abs(x-cx)
		if dir.Horizontal() {
			primary, secondary = secondary, primary
		}
		score := primary*10 + secondary
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func beyondEdge(dir domain.Direction, cur, r domain.Rect) bool {
	switch dir {
	case domain.DirectionLeft:
		return r.X+r.Width <= cur.X
	case domain.DirectionRight:
		return r.X >= cur.X+cur.Width
	case domain.DirectionUp:
		return r.Y+r.Height <= cur.Y
	case domain.DirectionDown:
		return r.Y >= cur.Y+cur.Height
	}
	return false
}

func (s *State) groupApplies() bool {
	return len(s.groupOrder) > 0 && s.groupIndex(s.elements[s.current].Group) >= 0
}

func (s *State) resolveGroup(dir domain.Direction) (int, bool) {
	group := s.elements[s.current].Group

	if dir.Horizontal() {
		members := s.members(group)
		pos := -1
		for p, m := range members {
			if m == s.current {
				pos = p
				break
			}
		}
		if dir.Backward() {
			pos--
		} else {
			pos++
		}
		if pos < 0 || pos >= len(members) {
			return -1, false
		}
		return members[pos], true
	}

	gi := s.groupIndex(group)
	if dir.Backward() {
		gi--
	} else {
		gi++
	}
	if gi < 0 || gi >= len(s.groupOrder) {
		return -1, false
	}
	target := s.groupOrder[gi]
	members := s.members(target)
	if len(members) == 0 {
		return -1, false
	}
	return members[clamp(s.lastInGroup[target], 0, len(members)-1)], true
}

func (s *State) resolveLinear(backward bool) (int, bool) {
	if backward {
		return s.step(-1)
	}
	return s.step(1)
}

// step moves delta positions through all elements, wrapping around
func (s *State) step(delta int) (int, bool) {
	n := len(s.elements)
	if n == 0 || s.current < 0 {
		return -1, false
	}
	target := ((s.current+delta)%n + n) % n
	return target, target != s.current
}

// inHalfPlane reports whether a (dRow, dCol) offset lies strictly in the queried direction
func inHalfPlane(dir domain.Direction, dRow, dCol int) bool {
	switch dir {
	case domain.DirectionLeft:
		return dCol < 0
	case domain.DirectionRight:
		return dCol > 0
	case domain.DirectionUp:
		return dRow < 0
	case domain.DirectionDown:
		return dRow > 0
	}
	return false
}

// weightedDistance favours closest-in-line over closest-diagonal
func weightedDistance(dir domain.Direction, dRow, dCol int) int {
	if dir.Horizontal() {
		return dCol*10 + dRow
	}
	return dRow*10 + dCol
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
