package annotate

import (
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/scene"
)

const (
	// MinFreeHandStep is the distance in image units the pointer must travel
	// from the last recorded point before a freehand stroke records another.
	MinFreeHandStep = 10
	// ArrowHeadRatio is the barb length as a fraction of the image height.
	ArrowHeadRatio = 0.05
	// Magnification multiplies stroke widths and text sizes at draw time.
	Magnification = 25
)

// Engine owns the finalized annotations of one editing session plus at most
// one in-progress shape. It is not safe for concurrent use.
type Engine struct {
	draft    Shape
	shapes   []Shape
	image    geom.Size
	crop     geom.Rect
	dragging bool

	cache     scene.Cache
	cacheOver bool
}

// New returns an engine for an image of the given size with the whole image
// visible.
func New(imageSize geom.Size) *Engine {
	return &Engine{image: imageSize, crop: geom.WithSize(imageSize)}
}

// SetTool replaces the in-progress shape template. A nil tool disables
// drawing.
func (e *Engine) SetTool(t Tool) {
	if t == nil {
		e.draft = nil
	} else {
		e.draft = shapeFromTool(t)
	}
	e.dragging = false
	e.cache.Clear()
}

// HasTool reports whether a tool is active.
func (e *Engine) HasTool() bool { return e.draft != nil }

// Dragging reports whether the primary button is held on the surface.
func (e *Engine) Dragging() bool { return e.dragging }

// HandleEvent applies a pointer event. bounds is the surface rectangle in
// window coordinates and cursor the pointer position in the same space.
// consumed reports whether the surface captured the event; committed is set
// when a shape was appended to the finalized list.
func (e *Engine) HandleEvent(ev pointer.Event, bounds geom.Rect, cursor pointer.Cursor) (consumed, committed bool) {
	e.cache.Clear()

	rel, ok := cursor.PositionIn(bounds)
	if !ok {
		return false, false
	}
	p, ok := geom.WidgetToLogical(rel, bounds.Size(), e.crop)
	if !ok {
		return false, false
	}
	if e.draft == nil {
		return false, false
	}

	if t, ok := e.draft.(Text); ok {
		t.Position = p
		e.draft = t
	}

	switch ev.Kind {
	case pointer.Press:
		e.dragging = true
		e.draft = press(e.draft, p)
		return true, false
	case pointer.Release:
		e.dragging = false
		e.shapes = append(e.shapes, e.draft.clone())
		e.draft = reset(e.draft)
		return true, true
	case pointer.Move:
		if e.dragging {
			e.draft = drag(e.draft, p)
		}
		return true, false
	}
	return false, false
}

func press(s Shape, p geom.Point) Shape {
	switch s := s.(type) {
	case Rectangle:
		s.Bounds.X, s.Bounds.Y = p.X, p.Y
		return s
	case Arrow:
		s.Start, s.End = p, p
		return s
	case FreeHand:
		s.Points = append(s.Points, p)
		return s
	}
	return s
}

func drag(s Shape, p geom.Point) Shape {
	switch s := s.(type) {
	case Rectangle:
		s.Bounds.W = p.X - s.Bounds.X
		s.Bounds.H = p.Y - s.Bounds.Y
		return s
	case Arrow:
		s.End = p
		return s
	case FreeHand:
		if n := len(s.Points); n > 0 && s.Points[n-1].Distance(p) > MinFreeHandStep {
			s.Points = append(s.Points, p)
		}
		return s
	}
	return s
}

// UndoLast removes the most recently finalized shape. It reports whether a
// shape was removed.
func (e *Engine) UndoLast() bool {
	if len(e.shapes) == 0 {
		return false
	}
	e.shapes[len(e.shapes)-1] = nil
	e.shapes = e.shapes[:len(e.shapes)-1]
	e.cache.Clear()
	return true
}

// ClearAll drops every shape and the active tool and shows the whole image.
func (e *Engine) ClearAll() {
	e.shapes = nil
	e.draft = nil
	e.dragging = false
	e.crop = geom.WithSize(e.image)
	e.cache.Clear()
}

// SetCropArea swaps the visible window of the image and returns the previous
// one.
func (e *Engine) SetCropArea(r geom.Rect) geom.Rect {
	prev := e.crop
	e.crop = r
	e.cache.Clear()
	return prev
}

// CropArea returns the visible window of the image.
func (e *Engine) CropArea() geom.Rect { return e.crop }

// SetImageSize changes the image size and shows the whole new image.
func (e *Engine) SetImageSize(s geom.Size) {
	e.image = s
	e.crop = geom.WithSize(s)
	e.cache.Clear()
}

// ImageSize returns the current image size.
func (e *Engine) ImageSize() geom.Size { return e.image }

// Len returns the number of finalized shapes.
func (e *Engine) Len() int { return len(e.shapes) }

// Shapes returns a deep copy of the finalized shapes in paint order.
func (e *Engine) Shapes() []Shape {
	out := make([]Shape, len(e.shapes))
	for i, s := range e.shapes {
		out[i] = s.clone()
	}
	return out
}

// Draft returns a copy of the in-progress shape, or nil without a tool.
func (e *Engine) Draft() Shape {
	if e.draft == nil {
		return nil
	}
	return e.draft.clone()
}

// Interaction returns the mouse cursor to show over the surface.
func (e *Engine) Interaction(bounds geom.Rect, cursor pointer.Cursor) pointer.Interaction {
	if cursor.IsOver(bounds) && e.draft != nil {
		return pointer.Crosshair
	}
	return pointer.Idle
}
