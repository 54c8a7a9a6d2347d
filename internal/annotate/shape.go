// Package annotate turns pointer input into vector annotations stored in
// image space.
package annotate

import (
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/scene"
)

// FillStyle selects between a solid fill and a stroked outline of Width.
type FillStyle struct {
	Filled bool
	Width  float32
}

// Filled is a solid fill.
func Filled() FillStyle { return FillStyle{Filled: true} }

// Stroked is an outline of the given width.
func Stroked(width float32) FillStyle { return FillStyle{Width: width} }

// Tool is the public, immutable specification of a drawing tool. It is one
// of RectangleTool, ArrowTool, TextTool or FreeHandTool.
type Tool interface {
	tool()
}

type RectangleTool struct {
	Color scene.Color
	Fill  FillStyle
}

type ArrowTool struct {
	Color       scene.Color
	StrokeWidth float32
}

type TextTool struct {
	Color   scene.Color
	Content string
	Size    float32
	Font    scene.Font
}

type FreeHandTool struct {
	Color       scene.Color
	StrokeWidth float32
}

func (RectangleTool) tool() {}
func (ArrowTool) tool()     {}
func (TextTool) tool()      {}
func (FreeHandTool) tool()  {}

// Shape is an annotation in image space. It is one of Rectangle, Arrow, Text
// or FreeHand.
type Shape interface {
	shape()
	clone() Shape
}

// Rectangle bounds are stored as dragged; width and height may be negative.
type Rectangle struct {
	Color  scene.Color
	Fill   FillStyle
	Bounds geom.Rect
}

type Arrow struct {
	Color       scene.Color
	StrokeWidth float32
	Start, End  geom.Point
}

// Text is drawn centred on Position.
type Text struct {
	Color    scene.Color
	Content  string
	Size     float32
	Font     scene.Font
	Position geom.Point
}

type FreeHand struct {
	Color       scene.Color
	StrokeWidth float32
	Points      []geom.Point
}

func (Rectangle) shape() {}
func (Arrow) shape()     {}
func (Text) shape()      {}
func (FreeHand) shape()  {}

func (r Rectangle) clone() Shape { return r }
func (a Arrow) clone() Shape     { return a }
func (t Text) clone() Shape      { return t }

func (f FreeHand) clone() Shape {
	pts := make([]geom.Point, len(f.Points))
	copy(pts, f.Points)
	f.Points = pts
	return f
}

// freeHandCapacity is the initial point buffer of a new stroke.
const freeHandCapacity = 300

// shapeFromTool builds the in-progress shape for a tool. No geometry is
// placed: extents start at zero.
func shapeFromTool(t Tool) Shape {
	switch t := t.(type) {
	case RectangleTool:
		return Rectangle{Color: t.Color, Fill: t.Fill}
	case ArrowTool:
		return Arrow{Color: t.Color, StrokeWidth: t.StrokeWidth}
	case TextTool:
		return Text{Color: t.Color, Content: t.Content, Size: t.Size, Font: t.Font}
	case FreeHandTool:
		return FreeHand{Color: t.Color, StrokeWidth: t.StrokeWidth, Points: make([]geom.Point, 0, freeHandCapacity)}
	}
	return nil
}

// reset returns s with its geometry cleared so a stale shape is not shown
// before the next press.
func reset(s Shape) Shape {
	switch s := s.(type) {
	case Rectangle:
		s.Bounds = geom.Rect{}
		return s
	case Arrow:
		s.Start, s.End = geom.Point{}, geom.Point{}
		return s
	case Text:
		s.Position = geom.Point{}
		return s
	case FreeHand:
		s.Points = s.Points[:0]
		return s
	}
	return s
}
