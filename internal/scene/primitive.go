package scene

import "github.com/example/markshot/internal/geom"

// Primitive is a node of the drawing tree. The set of node kinds is closed:
// only the types declared in this package implement it.
type Primitive interface {
	primitive()
}

// Paint is a fill or stroke source. Implemented by Solid and LinearGradient.
type Paint interface {
	paint()
}

// Solid paints a single colour.
type Solid struct {
	Color Color
}

// Stop is a gradient colour stop; Offset is in [0,1].
type Stop struct {
	Offset float32
	Color  Color
}

// LinearGradient paints a gradient from Start to End.
type LinearGradient struct {
	Start, End geom.Point
	Stops      []Stop
}

func (Solid) paint()          {}
func (LinearGradient) paint() {}

// LineCap is the shape of open stroke ends.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape of stroke corners.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Stroke describes how a path outline is painted.
type Stroke struct {
	Paint Paint
	Width float32
	Cap   LineCap
	Join  LineJoin
}

// Align positions text relative to its anchor.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Font names a face known to the rasterizer. The zero value is the default.
type Font string

// DefaultFont is the built-in sans serif face.
const DefaultFont Font = ""

// Group draws its children in order.
type Group struct {
	Children []Primitive
}

// Clip limits Content to Bounds.
type Clip struct {
	Bounds  geom.Rect
	Content Primitive
}

// Translate offsets Content.
type Translate struct {
	Offset  geom.Point
	Content Primitive
}

// Cached wraps content produced by a Cache. The content must not be mutated.
type Cached struct {
	Content Primitive
}

// FillPath fills the interior of Path.
type FillPath struct {
	Path  Path
	Paint Paint
}

// StrokePath strokes the outline of Path.
type StrokePath struct {
	Path   Path
	Stroke Stroke
}

// Text is a run of text anchored at Position.
type Text struct {
	Content  string
	Position geom.Point
	Color    Color
	Size     float32
	Font     Font
	HAlign   Align
	VAlign   Align
}

// Quad is an axis-aligned box with an optional border.
type Quad struct {
	Bounds      geom.Rect
	Background  Paint
	BorderColor Color
	BorderWidth float32
	Radius      float32
}

// Vertex is a coloured mesh vertex.
type Vertex struct {
	Pos   geom.Point
	Color Color
}

// Mesh is a triangle list; every three Indices form a triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func (Group) primitive()      {}
func (Clip) primitive()       {}
func (Translate) primitive()  {}
func (Cached) primitive()     {}
func (FillPath) primitive()   {}
func (StrokePath) primitive() {}
func (Text) primitive()       {}
func (Quad) primitive()       {}
func (Mesh) primitive()       {}
