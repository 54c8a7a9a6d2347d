// Package crop implements the interactive crop selection: a single rectangle
// inside fixed bounds that the user creates, resizes from either corner and
// moves.
package crop

import (
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/scene"
)

// HandleSize is the side of a corner handle in widget pixels.
const HandleSize = 17

// handleStroke is the width of the drawn L marks.
const handleStroke = 4

// OverlayColor darkens everything outside the selection.
var OverlayColor = scene.RGBA(0, 0, 0, 0.8)

// HandleColor strokes the corner marks.
var HandleColor = scene.White

// Action is the drag currently in progress.
type Action int

const (
	None Action = iota
	ResizeTopLeft
	ResizeBottomRight
	Move
)

func (a Action) String() string {
	switch a {
	case ResizeTopLeft:
		return "resize-top-left"
	case ResizeBottomRight:
		return "resize-bottom-right"
	case Move:
		return "move"
	}
	return "none"
}

// Tool is a crop selection session. The zero value is not usable; call New.
type Tool struct {
	bounds geom.Rect
	min    geom.Size

	rect      geom.Rect
	hasRect   bool
	committed geom.Rect
	hasCommit bool

	topLeft, bottomRight geom.Rect
	action               Action
	offset               geom.Point

	cache scene.Cache
}

// New returns a tool that keeps selections inside bounds and no smaller than
// min. Both are in image space. A min larger than bounds is cut down to it.
func New(bounds geom.Rect, minSize geom.Size) *Tool {
	minSize.W = max(0, min(minSize.W, bounds.W))
	minSize.H = max(0, min(minSize.H, bounds.H))
	return &Tool{bounds: bounds, min: minSize}
}

// Bounds returns the outer limit of the selection.
func (t *Tool) Bounds() geom.Rect { return t.bounds }

// CropRect returns the rectangle committed by the last release.
func (t *Tool) CropRect() (geom.Rect, bool) { return t.committed, t.hasCommit }

// Selection returns the live rectangle, including an uncommitted drag.
func (t *Tool) Selection() (geom.Rect, bool) { return t.rect, t.hasRect }

// Action returns the drag in progress.
func (t *Tool) Action() Action { return t.action }

// HandleEvent applies a pointer event. widget is the surface rectangle in
// window coordinates. It reports whether the event was captured.
func (t *Tool) HandleEvent(ev pointer.Event, widget geom.Rect, cursor pointer.Cursor) bool {
	rel, ok := cursor.PositionIn(widget)
	if !ok {
		return false
	}
	p, ok := geom.WidgetToLogical(rel, widget.Size(), t.bounds)
	if !ok {
		return false
	}

	if !t.hasRect {
		if ev.Kind != pointer.Press {
			return false
		}
		t.create(p)
		t.cache.Clear()
		return true
	}

	t.placeHandles(widget.Size())

	switch ev.Kind {
	case pointer.Press:
		t.action = t.hit(p)
		if t.action == Move {
			t.offset = p.Sub(t.rect.Origin())
		}
		return true
	case pointer.Move:
		if t.action == None {
			return false
		}
		t.drag(p)
		t.cache.Clear()
		return true
	case pointer.Release:
		t.action = None
		t.committed, t.hasCommit = t.rect, true
		t.cache.Clear()
		return true
	}
	return false
}

func (t *Tool) create(p geom.Point) {
	r := geom.Rect{X: p.X, Y: p.Y, W: t.min.W, H: t.min.H}
	if r.X+r.W > t.bounds.X+t.bounds.W {
		r.X = t.bounds.X + t.bounds.W - r.W
	}
	if r.Y+r.H > t.bounds.Y+t.bounds.H {
		r.Y = t.bounds.Y + t.bounds.H - r.H
	}
	t.rect, t.hasRect = r, true
	t.contain()
	t.action = ResizeBottomRight
}

// placeHandles recomputes the corner hit squares. Their widget size is fixed
// so the logical size follows the view scale.
func (t *Tool) placeHandles(widget geom.Size) {
	size := float32(HandleSize) * t.bounds.H / widget.H
	half := size / 2
	r := t.rect
	t.topLeft = geom.R(r.X-half, r.Y-half, size, size)
	t.bottomRight = geom.R(r.X+r.W-half, r.Y+r.H-half, size, size)
}

func (t *Tool) hit(p geom.Point) Action {
	switch {
	case t.topLeft.Contains(p):
		return ResizeTopLeft
	case t.bottomRight.Contains(p):
		return ResizeBottomRight
	case t.rect.Contains(p):
		return Move
	}
	return None
}

func (t *Tool) drag(p geom.Point) {
	r := &t.rect
	switch t.action {
	case ResizeTopLeft:
		br := r.Max()
		// Pin the origin on an axis that would shrink below the minimum so
		// the handle does not jump.
		if r.W-(p.X-r.X) < t.min.W {
			r.X = br.X - t.min.W
		} else {
			r.X = p.X
		}
		if r.H-(p.Y-r.Y) < t.min.H {
			r.Y = br.Y - t.min.H
		} else {
			r.Y = p.Y
		}
		r.W = max(br.X-r.X, t.min.W)
		r.H = max(br.Y-r.Y, t.min.H)
	case ResizeBottomRight:
		r.W = max(p.X-r.X, t.min.W)
		r.H = max(p.Y-r.Y, t.min.H)
	case Move:
		o := p.Sub(t.offset)
		r.X = clampAxis(o.X, r.W, t.bounds.X, t.bounds.W)
		r.Y = clampAxis(o.Y, r.H, t.bounds.Y, t.bounds.H)
	}
	t.contain()
}

func clampAxis(v, size, lo, span float32) float32 {
	if v < lo {
		return lo
	}
	if v+size > lo+span {
		return lo + span - size
	}
	return v
}

// contain pulls the rectangle back inside the bounds after a resize whose
// minimum size pushed it past an edge.
func (t *Tool) contain() {
	r := &t.rect
	b := t.bounds
	r.W = min(r.W, b.W)
	r.H = min(r.H, b.H)
	r.X = clampAxis(r.X, r.W, b.X, b.W)
	r.Y = clampAxis(r.Y, r.H, b.Y, b.H)
}

// Interaction returns the mouse cursor to show over the surface.
func (t *Tool) Interaction(widget geom.Rect, cursor pointer.Cursor) pointer.Interaction {
	rel, ok := cursor.PositionIn(widget)
	if !ok {
		return pointer.Idle
	}
	p, ok := geom.WidgetToLogical(rel, widget.Size(), t.bounds)
	if !ok {
		return pointer.Idle
	}
	if !t.hasRect {
		return pointer.Crosshair
	}
	switch {
	case t.topLeft.Contains(p), t.bottomRight.Contains(p):
		return pointer.ResizeVertical
	case t.rect.Contains(p) && t.action == None:
		return pointer.Grab
	case t.rect.Contains(p):
		return pointer.Grabbing
	}
	return pointer.Idle
}

// Draw renders the overlay in widget space, relative to the surface origin.
func (t *Tool) Draw(widget geom.Rect) scene.Primitive {
	size := widget.Size()
	return t.cache.Draw(size, func(f *scene.Frame) {
		if !t.hasRect {
			f.FillRect(geom.Point{}, size, OverlayColor)
			return
		}
		r := t.rect
		s := geom.R(
			(r.X-t.bounds.X)*size.W/t.bounds.W,
			(r.Y-t.bounds.Y)*size.H/t.bounds.H,
			r.W*size.W/t.bounds.W,
			r.H*size.H/t.bounds.H,
		)
		br := s.Max()

		// Four bands so the corners are not covered twice.
		f.FillRect(geom.Pt(0, 0), geom.Sz(size.W, s.Y), OverlayColor)
		f.FillRect(geom.Pt(0, br.Y), geom.Sz(size.W, size.H-br.Y), OverlayColor)
		f.FillRect(geom.Pt(0, s.Y), geom.Sz(s.X, s.H), OverlayColor)
		f.FillRect(geom.Pt(br.X, s.Y), geom.Sz(size.W-br.X, s.H), OverlayColor)

		stroke := scene.Stroke{
			Paint: scene.Solid{Color: HandleColor},
			Width: handleStroke,
			Cap:   scene.CapRound,
			Join:  scene.JoinRound,
		}
		var tl, brb scene.Builder
		tl.MoveTo(geom.Pt(s.X+HandleSize, s.Y)).LineTo(s.Origin()).LineTo(geom.Pt(s.X, s.Y+HandleSize))
		brb.MoveTo(geom.Pt(br.X-HandleSize, br.Y)).LineTo(br).LineTo(geom.Pt(br.X, br.Y-HandleSize))
		f.Stroke(tl.Build(), stroke)
		f.Stroke(brb.Build(), stroke)
	})
}
