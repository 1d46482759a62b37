package domain

// Direction represents movement directions
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// Horizontal reports whether the direction moves along columns
func (d Direction) Horizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Backward reports whether the direction decreases the index/coordinate
func (d Direction) Backward() bool {
	return d == DirectionLeft || d == DirectionUp
}

// Op is the semantic operation a raw input maps onto
type Op string

const (
	OpNone    Op = ""
	OpLeft    Op = "LEFT"
	OpRight   Op = "RIGHT"
	OpUp      Op = "UP"
	OpDown    Op = "DOWN"
	OpEnter   Op = "ENTER"
	OpBack    Op = "BACK"
	OpNext    Op = "NEXT" // Tab
	OpPrev    Op = "PREV" // Shift+Tab
	OpMedia   Op = "MEDIA"
	OpHome    Op = "HOME"
	OpNumeric Op = "NUM"
)

// Direction returns the movement direction of a directional op
func (o Op) Direction() (Direction, bool) {
	switch o {
	case OpLeft:
		return DirectionLeft, true
	case OpRight:
		return DirectionRight, true
	case OpUp:
		return DirectionUp, true
	case OpDown:
		return DirectionDown, true
	}
	return "", false
}

// Ignored reports ops that are recognised but have no default behaviour
func (o Op) Ignored() bool {
	return o == OpMedia || o == OpHome || o == OpNumeric
}

// Source identifies where a signal came from
type Source string

const (
	SourceKeyboard Source = "keyboard"
	SourceRemote   Source = "remote"   // keyCode based remote events
	SourceHardware Source = "hardware" // vendor hardware-key events (tizenhwkey)
	SourceScript   Source = "script"
)

// Signal is one normalized input delivered to the engine.
// Turn identifies the physical key press; signals sharing a non-zero
// Turn were produced by the same press through different listeners.
type Signal struct {
	Op     Op
	Source Source
	Turn   uint64
}
