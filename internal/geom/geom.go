// Package geom holds the float geometry shared by the annotation and crop
// engines and the mapping from widget pixels to image space.
package geom

import (
	"image"
	"math"
)

// Point is a position in either widget or image space.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float32) Point { return Point{p.X * k, p.Y * k} }

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float32 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return float32(math.Hypot(dx, dy))
}

// Size is a width and height pair.
type Size struct {
	W, H float32
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float32) Size { return Size{W: w, H: h} }

// Empty reports whether the size has no area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an origin plus a size. Width and height may be negative while a
// shape is being dragged; use Normalize before hit-testing such a rectangle.
type Rect struct {
	X, Y, W, H float32
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// WithSize returns a rectangle at the origin with the given size.
func WithSize(s Size) Rect { return Rect{W: s.W, H: s.H} }

// FromImage converts an integer rectangle.
func FromImage(r image.Rectangle) Rect {
	return Rect{X: float32(r.Min.X), Y: float32(r.Min.Y), W: float32(r.Dx()), H: float32(r.Dy())}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Size returns the extent of r.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Max returns the corner opposite the origin.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Normalize flips negative extents so that W and H are non-negative.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X && p.X <= n.X+n.W && p.Y >= n.Y && p.Y <= n.Y+n.H
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	n, m := r.Normalize(), o.Normalize()
	return m.X >= n.X && m.Y >= n.Y && m.X+m.W <= n.X+n.W && m.Y+m.H <= n.Y+n.H
}

// Snap rounds r to the nearest integer pixel rectangle.
func (r Rect) Snap() image.Rectangle {
	n := r.Normalize()
	x := int(math.Round(float64(n.X)))
	y := int(math.Round(float64(n.Y)))
	w := int(math.Round(float64(n.W)))
	h := int(math.Round(float64(n.H)))
	return image.Rect(x, y, x+w, y+h)
}

// WidgetToLogical maps a pointer position expressed in widget pixels into the
// coordinate space described by logical. The pointer is relative to the
// widget's top-left corner. It reports false when widget has no area, in which
// case the pointer must be treated as not over the surface.
func WidgetToLogical(p Point, widget Size, logical Rect) (Point, bool) {
	if widget.Empty() {
		return Point{}, false
	}
	return Point{
		X: p.X*logical.W/widget.W + logical.X,
		Y: p.Y*logical.H/widget.H + logical.Y,
	}, true
}

// LogicalToWidget is the inverse of WidgetToLogical.
func LogicalToWidget(p Point, widget Size, logical Rect) (Point, bool) {
	if logical.Size().Empty() {
		return Point{}, false
	}
	return Point{
		X: (p.X - logical.X) * widget.W / logical.W,
		Y: (p.Y - logical.Y) * widget.H / logical.H,
	}, true
}
