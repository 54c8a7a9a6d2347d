package compositor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// ShadowOptions configures the drop shadow added on export.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions suits most screenshots.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// DropShadow places img on a larger transparent canvas above a blurred
// silhouette of itself. It returns the new image and where img's top-left
// corner landed. With no opacity img is returned unchanged.
func DropShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	union := src.Union(shadow)
	if int64(union.Dx())*int64(union.Dy()) > MaxPixels {
		return img, image.Point{}
	}

	alpha := uint8(opacity*255 + 0.5)
	mask := image.NewNRGBA(image.Rectangle{Max: padded.Size()})
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			a := img.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mask.SetNRGBA(x-padded.Min.X, y-padded.Min.Y, color.NRGBA{A: uint8(uint16(a) * uint16(alpha) / 255)})
		}
	}
	var blurred image.Image = mask
	if radius > 0 {
		blurred = imaging.Blur(mask, float64(radius)/2)
	}

	out := image.NewRGBA(image.Rectangle{Max: union.Size()})
	draw.Draw(out, shadow.Sub(union.Min), blurred, image.Point{}, draw.Over)
	shift := src.Min.Sub(union.Min)
	draw.Draw(out, src.Sub(union.Min), img, src.Min, draw.Over)
	return out, shift
}
