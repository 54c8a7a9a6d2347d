// Package pointer describes primary-button pointer input as seen by a
// drawing surface.
package pointer

import "github.com/example/markshot/internal/geom"

// Kind identifies a pointer event.
type Kind int

const (
	// Other covers events the engines do not react to, such as wheel or
	// secondary buttons.
	Other Kind = iota
	Press
	Release
	Move
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Move:
		return "move"
	}
	return "other"
}

// Event is a single pointer event.
type Event struct {
	Kind Kind
}

// Cursor is the pointer position in window coordinates. Available is false
// when the pointer left the window.
type Cursor struct {
	Pos       geom.Point
	Available bool
}

// At returns an available cursor at p.
func At(p geom.Point) Cursor { return Cursor{Pos: p, Available: true} }

// Unavailable is a cursor outside any surface.
var Unavailable = Cursor{}

// PositionIn returns the cursor relative to bounds, or false if the cursor is
// unavailable or outside bounds.
func (c Cursor) PositionIn(bounds geom.Rect) (geom.Point, bool) {
	if !c.Available || !bounds.Contains(c.Pos) {
		return geom.Point{}, false
	}
	return c.Pos.Sub(bounds.Origin()), true
}

// IsOver reports whether the cursor is within bounds.
func (c Cursor) IsOver(bounds geom.Rect) bool {
	_, ok := c.PositionIn(bounds)
	return ok
}

// Interaction is the mouse cursor shape a surface asks the host to display.
type Interaction int

const (
	Idle Interaction = iota
	Crosshair
	Grab
	Grabbing
	ResizeVertical
)

func (i Interaction) String() string {
	switch i {
	case Crosshair:
		return "crosshair"
	case Grab:
		return "grab"
	case Grabbing:
		return "grabbing"
	case ResizeVertical:
		return "resize"
	}
	return "default"
}
