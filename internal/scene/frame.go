package scene

import "github.com/example/markshot/internal/geom"

// Frame records primitives for a surface of a given size.
type Frame struct {
	size  geom.Size
	prims []Primitive
}

// NewFrame returns an empty frame.
func NewFrame(size geom.Size) *Frame {
	return &Frame{size: size}
}

// Size returns the frame size.
func (f *Frame) Size() geom.Size { return f.size }

// Fill fills path with paint.
func (f *Frame) Fill(path Path, paint Paint) {
	if path.Empty() {
		return
	}
	f.prims = append(f.prims, FillPath{Path: path, Paint: paint})
}

// FillRect fills an axis-aligned rectangle with a solid colour.
func (f *Frame) FillRect(origin geom.Point, size geom.Size, c Color) {
	f.Fill(Rectangle(origin, size), Solid{Color: c})
}

// Stroke strokes path.
func (f *Frame) Stroke(path Path, stroke Stroke) {
	if path.Empty() {
		return
	}
	f.prims = append(f.prims, StrokePath{Path: path, Stroke: stroke})
}

// FillText draws text.
func (f *Frame) FillText(t Text) {
	f.prims = append(f.prims, t)
}

// Add appends an arbitrary primitive.
func (f *Frame) Add(p Primitive) {
	if p != nil {
		f.prims = append(f.prims, p)
	}
}

// WithClip records everything drawn by fn clipped to r.
func (f *Frame) WithClip(r geom.Rect, fn func(*Frame)) {
	sub := NewFrame(r.Size())
	fn(sub)
	if len(sub.prims) == 0 {
		return
	}
	f.prims = append(f.prims, Clip{Bounds: r, Content: Group{Children: sub.prims}})
}

// Len returns the number of top level primitives recorded.
func (f *Frame) Len() int { return len(f.prims) }

// Primitive returns everything recorded so far as a group.
func (f *Frame) Primitive() Primitive {
	out := make([]Primitive, len(f.prims))
	copy(out, f.prims)
	return Group{Children: out}
}
