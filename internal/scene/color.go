// Package scene is the retained drawing layer produced by the editing
// engines. It is a closed tree of primitives that a rasterizer walks.
package scene

import (
	"image/color"
	"math"
)

// Color is a straight (non-premultiplied) colour with components in [0,1].
type Color struct {
	R, G, B, A float32
}

var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGB returns an opaque colour.
func RGB(r, g, b float32) Color { return Color{r, g, b, 1} }

// RGBA returns a colour with alpha.
func RGBA(r, g, b, a float32) Color { return Color{r, g, b, a} }

// FromColor converts any image/color value.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// NRGBA converts c to 8-bit straight alpha.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}
