// Package render rasterizes scene primitives into RGBA buffers using gg.
//
// The backing buffer is written in device (BGRA) order: red and blue of every
// paint are exchanged on the way in. Callers that want true-colour output run
// the tree through compositor.FixColors first.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/example/markshot/internal/scene"
)

// Rasterizer draws scene trees. It caches font faces and is not safe for
// concurrent use.
type Rasterizer struct {
	fonts *FontBook
}

// New returns a rasterizer using fonts for text. A nil book uses the built-in
// faces.
func New(fonts *FontBook) *Rasterizer {
	if fonts == nil {
		fonts = NewFontBook()
	}
	return &Rasterizer{fonts: fonts}
}

// Draw paints p over dst. Coordinates are relative to dst.Bounds().Min.
func (r *Rasterizer) Draw(dst *image.RGBA, p scene.Primitive) {
	if dst == nil || p == nil || dst.Bounds().Empty() {
		return
	}
	if o := dst.Bounds().Min; o != (image.Point{}) {
		// gg assumes a zero origin; paint a layer and blend it in.
		layer := r.Layer(dst.Bounds().Size(), p)
		draw.Draw(dst, dst.Bounds(), layer, image.Point{}, draw.Over)
		return
	}
	r.walk(gg.NewContextForRGBA(dst), p)
}

// Layer returns a transparent buffer of the given size with p painted on it.
func (r *Rasterizer) Layer(size image.Point, p scene.Primitive) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	r.Draw(dst, p)
	return dst
}

func (r *Rasterizer) walk(dc *gg.Context, p scene.Primitive) {
	switch p := p.(type) {
	case scene.Group:
		for _, c := range p.Children {
			r.walk(dc, c)
		}
	case scene.Cached:
		r.walk(dc, p.Content)
	case scene.Clip:
		dc.Push()
		dc.DrawRectangle(float64(p.Bounds.X), float64(p.Bounds.Y), float64(p.Bounds.W), float64(p.Bounds.H))
		dc.Clip()
		r.walk(dc, p.Content)
		dc.Pop()
	case scene.Translate:
		dc.Push()
		dc.Translate(float64(p.Offset.X), float64(p.Offset.Y))
		r.walk(dc, p.Content)
		dc.Pop()
	case scene.FillPath:
		tracePath(dc, p.Path)
		dc.SetFillStyle(pattern(p.Paint))
		dc.Fill()
	case scene.StrokePath:
		if p.Stroke.Width <= 0 {
			return
		}
		tracePath(dc, p.Path)
		dc.SetStrokeStyle(pattern(p.Stroke.Paint))
		dc.SetLineWidth(float64(p.Stroke.Width))
		dc.SetLineCap(lineCap(p.Stroke.Cap))
		dc.SetLineJoin(lineJoin(p.Stroke.Join))
		dc.Stroke()
	case scene.Text:
		r.text(dc, p)
	case scene.Quad:
		quad(dc, p)
	case scene.Mesh:
		mesh(dc, p)
	}
}

func tracePath(dc *gg.Context, path scene.Path) {
	dc.ClearPath()
	for _, s := range path.Segments {
		switch s.Op {
		case scene.OpMove:
			dc.MoveTo(float64(s.Pt.X), float64(s.Pt.Y))
		case scene.OpLine:
			dc.LineTo(float64(s.Pt.X), float64(s.Pt.Y))
		case scene.OpClose:
			dc.ClosePath()
		}
	}
}

func (r *Rasterizer) text(dc *gg.Context, t scene.Text) {
	if t.Content == "" || t.Size <= 0 {
		return
	}
	face := r.fonts.Face(t.Font, float64(t.Size))
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetColor(device(t.Color))
	w, _ := dc.MeasureString(t.Content)
	x := float64(t.Position.X) - anchor(t.HAlign)*w
	dc.DrawString(t.Content, x, baseline(face.Metrics(), float64(t.Position.Y), t.VAlign))
}

// baseline places the ascent-descent box on y per the vertical alignment.
// Line gap is left out so centred text sits on its anchor.
func baseline(m font.Metrics, y float64, a scene.Align) float64 {
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	return y + ascent - anchor(a)*(ascent+descent)
}

func anchor(a scene.Align) float64 {
	switch a {
	case scene.AlignCenter:
		return 0.5
	case scene.AlignEnd:
		return 1
	}
	return 0
}

func quad(dc *gg.Context, q scene.Quad) {
	b := q.Bounds.Normalize()
	shape := func() {
		if q.Radius > 0 {
			dc.DrawRoundedRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H), float64(q.Radius))
		} else {
			dc.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
		}
	}
	if q.Background != nil {
		shape()
		dc.SetFillStyle(pattern(q.Background))
		dc.Fill()
	}
	if q.BorderWidth > 0 {
		shape()
		dc.SetStrokeStyle(gg.NewSolidPattern(device(q.BorderColor)))
		dc.SetLineWidth(float64(q.BorderWidth))
		dc.Stroke()
	}
}

// mesh fills each triangle with the mean of its vertex colours; gg has no
// per-vertex shading.
func mesh(dc *gg.Context, m scene.Mesh) {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		var tri [3]scene.Vertex
		ok := true
		for k := 0; k < 3; k++ {
			idx := int(m.Indices[i+k])
			if idx >= len(m.Vertices) {
				ok = false
				break
			}
			tri[k] = m.Vertices[idx]
		}
		if !ok {
			continue
		}
		dc.ClearPath()
		dc.MoveTo(float64(tri[0].Pos.X), float64(tri[0].Pos.Y))
		dc.LineTo(float64(tri[1].Pos.X), float64(tri[1].Pos.Y))
		dc.LineTo(float64(tri[2].Pos.X), float64(tri[2].Pos.Y))
		dc.ClosePath()
		dc.SetColor(device(meanColor(tri[0].Color, tri[1].Color, tri[2].Color)))
		dc.Fill()
	}
}

func meanColor(a, b, c scene.Color) scene.Color {
	return scene.Color{
		R: (a.R + b.R + c.R) / 3,
		G: (a.G + b.G + c.G) / 3,
		B: (a.B + b.B + c.B) / 3,
		A: (a.A + b.A + c.A) / 3,
	}
}

func pattern(p scene.Paint) gg.Pattern {
	switch p := p.(type) {
	case scene.Solid:
		return gg.NewSolidPattern(device(p.Color))
	case scene.LinearGradient:
		g := gg.NewLinearGradient(float64(p.Start.X), float64(p.Start.Y), float64(p.End.X), float64(p.End.Y))
		for _, s := range p.Stops {
			g.AddColorStop(float64(s.Offset), device(s.Color))
		}
		return g
	}
	return gg.NewSolidPattern(color.Transparent)
}

func lineCap(c scene.LineCap) gg.LineCap {
	switch c {
	case scene.CapRound:
		return gg.LineCapRound
	case scene.CapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

// lineJoin maps miter joins to bevel; gg only offers round and bevel.
func lineJoin(j scene.LineJoin) gg.LineJoin {
	if j == scene.JoinRound {
		return gg.LineJoinRound
	}
	return gg.LineJoinBevel
}

// device converts c to the buffer's channel order.
func device(c scene.Color) color.NRGBA {
	n := c.NRGBA()
	n.R, n.B = n.B, n.R
	return n
}
