// Package compositor flattens a vector annotation layer onto source pixels.
package compositor

import (
	"errors"
	"image"

	"golang.org/x/image/draw"

	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/render"
	"github.com/example/markshot/internal/scene"
)

// MaxPixels bounds the area of a buffer the compositor agrees to allocate.
const MaxPixels = 1 << 28

// ErrAllocation is returned when a pixel buffer cannot be created at the
// requested dimensions.
var ErrAllocation = errors.New("cannot allocate pixel buffer")

// Layer produces the vector content to flatten.
type Layer interface {
	Draw(bounds geom.Rect, cursor pointer.Cursor) scene.Primitive
}

// CropAreaSetter is implemented by layers with a movable visible window.
// Flatten widens it to the whole image while rendering.
type CropAreaSetter interface {
	SetCropArea(geom.Rect) geom.Rect
}

// Compositor holds the rasterizer used for flattening.
type Compositor struct {
	raster *render.Rasterizer
}

// New returns a compositor drawing with r. A nil rasterizer uses the
// built-in fonts.
func New(r *render.Rasterizer) *Compositor {
	if r == nil {
		r = render.New(nil)
	}
	return &Compositor{raster: r}
}

// Flatten renders layer at the resolution of src with no cursor, composites
// it over a copy of src and optionally crops the result. src is not
// modified.
func (c *Compositor) Flatten(layer Layer, src *image.RGBA, crop *image.Rectangle) (*image.RGBA, error) {
	if err := checkSize(src); err != nil {
		return nil, err
	}
	size := src.Bounds().Size()
	full := geom.R(0, 0, float32(size.X), float32(size.Y))
	if s, ok := layer.(CropAreaSetter); ok {
		prev := s.SetCropArea(full)
		defer s.SetCropArea(prev)
	}
	return c.FlattenPrimitive(layer.Draw(full, pointer.Unavailable), src, crop)
}

// FlattenPrimitive composites an already built primitive tree over src.
func (c *Compositor) FlattenPrimitive(p scene.Primitive, src *image.RGBA, crop *image.Rectangle) (*image.RGBA, error) {
	if err := checkSize(src); err != nil {
		return nil, err
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)

	if p != nil {
		layer := c.raster.Layer(b.Size(), FixColors(p))
		draw.Draw(out, out.Bounds(), layer, image.Point{}, draw.Over)
	}

	if crop == nil {
		return out, nil
	}
	return Crop(out, *crop)
}

// Crop copies r, clamped to img's bounds, into a new zero-origin buffer.
func Crop(img *image.RGBA, r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, ErrAllocation
	}
	out := image.NewRGBA(image.Rectangle{Max: r.Size()})
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out, nil
}

func checkSize(img *image.RGBA) error {
	if img == nil {
		return ErrAllocation
	}
	s := img.Bounds().Size()
	if s.X <= 0 || s.Y <= 0 || int64(s.X)*int64(s.Y) > MaxPixels {
		return ErrAllocation
	}
	return nil
}
