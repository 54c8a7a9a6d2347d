package scene

import "github.com/example/markshot/internal/geom"

// Op is a path construction verb.
type Op int

const (
	OpMove Op = iota
	OpLine
	OpClose
)

// Segment is one path verb and its point. Close ignores the point.
type Segment struct {
	Op Op
	Pt geom.Point
}

// Path is an immutable outline made of straight segments.
type Path struct {
	Segments []Segment
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool { return len(p.Segments) == 0 }

// Transform returns a copy of p with fn applied to every point.
func (p Path) Transform(fn func(geom.Point) geom.Point) Path {
	out := make([]Segment, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = Segment{Op: s.Op, Pt: fn(s.Pt)}
	}
	return Path{Segments: out}
}

// Builder accumulates segments for a Path.
type Builder struct {
	segs []Segment
}

// MoveTo starts a new sub-path at p.
func (b *Builder) MoveTo(p geom.Point) *Builder {
	b.segs = append(b.segs, Segment{Op: OpMove, Pt: p})
	return b
}

// LineTo adds a straight segment to p.
func (b *Builder) LineTo(p geom.Point) *Builder {
	b.segs = append(b.segs, Segment{Op: OpLine, Pt: p})
	return b
}

// Close closes the current sub-path.
func (b *Builder) Close() *Builder {
	b.segs = append(b.segs, Segment{Op: OpClose})
	return b
}

// Build returns the accumulated path.
func (b *Builder) Build() Path {
	out := make([]Segment, len(b.segs))
	copy(out, b.segs)
	return Path{Segments: out}
}

// Rectangle returns a closed rectangular path. Negative sizes are kept so the
// outline follows the drag direction.
func Rectangle(origin geom.Point, size geom.Size) Path {
	var b Builder
	b.MoveTo(origin).
		LineTo(geom.Pt(origin.X+size.W, origin.Y)).
		LineTo(geom.Pt(origin.X+size.W, origin.Y+size.H)).
		LineTo(geom.Pt(origin.X, origin.Y+size.H)).
		Close()
	return b.Build()
}

// Polyline returns an open path through pts, or an empty path if pts is empty.
func Polyline(pts []geom.Point) Path {
	if len(pts) == 0 {
		return Path{}
	}
	var b Builder
	b.MoveTo(pts[0])
	for _, p := range pts[1:] {
		b.LineTo(p)
	}
	return b.Build()
}
