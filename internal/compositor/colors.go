package compositor

import "github.com/example/markshot/internal/scene"

// SwapRedBlue exchanges the red and blue components of c.
func SwapRedBlue(c scene.Color) scene.Color {
	c.R, c.B = c.B, c.R
	return c
}

// FixColors returns a copy of p with red and blue exchanged in every colour it
// carries: paints, text, quad borders and mesh vertices, through any depth of
// groups, clips, translations and cached nodes. The input tree is not
// modified, so cached engine output stays valid.
func FixColors(p scene.Primitive) scene.Primitive {
	switch p := p.(type) {
	case scene.Group:
		children := make([]scene.Primitive, len(p.Children))
		for i, c := range p.Children {
			children[i] = FixColors(c)
		}
		return scene.Group{Children: children}
	case scene.Cached:
		return scene.Cached{Content: FixColors(p.Content)}
	case scene.Clip:
		p.Content = FixColors(p.Content)
		return p
	case scene.Translate:
		p.Content = FixColors(p.Content)
		return p
	case scene.FillPath:
		p.Paint = fixPaint(p.Paint)
		return p
	case scene.StrokePath:
		p.Stroke.Paint = fixPaint(p.Stroke.Paint)
		return p
	case scene.Text:
		p.Color = SwapRedBlue(p.Color)
		return p
	case scene.Quad:
		p.Background = fixPaint(p.Background)
		p.BorderColor = SwapRedBlue(p.BorderColor)
		return p
	case scene.Mesh:
		verts := make([]scene.Vertex, len(p.Vertices))
		for i, v := range p.Vertices {
			v.Color = SwapRedBlue(v.Color)
			verts[i] = v
		}
		p.Vertices = verts
		return p
	}
	return p
}

func fixPaint(p scene.Paint) scene.Paint {
	switch p := p.(type) {
	case scene.Solid:
		return scene.Solid{Color: SwapRedBlue(p.Color)}
	case scene.LinearGradient:
		stops := make([]scene.Stop, len(p.Stops))
		for i, s := range p.Stops {
			s.Color = SwapRedBlue(s.Color)
			stops[i] = s
		}
		p.Stops = stops
		return p
	}
	return p
}
