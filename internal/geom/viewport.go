package geom

// Viewport maps stored image-space geometry to device pixels: a point p is
// drawn at (p + Translation) * Scale.
type Viewport struct {
	Scale       float32
	Translation Point
}

// NewViewport derives the mapping for an image of imageSize whose visible
// window is cropArea, shown in a widget of the given size.
//
// The scale is height based and applied to both axes. When the widget aspect
// differs from the crop aspect the drawing is stretched horizontally relative
// to the pointer mapping; callers keep the widget aspect equal to the crop.
func NewViewport(imageSize Size, cropArea Rect, widget Size) Viewport {
	var scale float32
	if cropArea.H != 0 && imageSize.H != 0 {
		scale = imageSize.H * widget.H / cropArea.H / imageSize.H
	}
	return Viewport{
		Scale:       scale,
		Translation: Point{-cropArea.X, -cropArea.Y},
	}
}

// Apply transforms an image-space point to device pixels.
func (v Viewport) Apply(p Point) Point {
	return p.Add(v.Translation).Mul(v.Scale)
}

// ApplyAll transforms every point in pts into a new slice.
func (v Viewport) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = v.Apply(p)
	}
	return out
}
