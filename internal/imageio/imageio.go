// Package imageio encodes, decodes and names exported screenshots.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an export encoding.
type Format int

const (
	Png Format = iota
	Bmp
	Jpeg
	Gif
)

// All lists the formats in menu order.
var All = []Format{Png, Bmp, Jpeg, Gif}

// JPEGQuality is used for Jpeg exports.
const JPEGQuality = 95

// String returns the config name of the format.
func (f Format) String() string {
	switch f {
	case Png:
		return "Png"
	case Bmp:
		return "Bmp"
	case Jpeg:
		return "Jpeg"
	case Gif:
		return "Gif"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the preferred file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case Bmp:
		return "bmp"
	case Jpeg:
		return "jpg"
	case Gif:
		return "gif"
	}
	return "png"
}

// MIME returns the media type of the encoding.
func (f Format) MIME() string {
	switch f {
	case Bmp:
		return "image/bmp"
	case Jpeg:
		return "image/jpeg"
	case Gif:
		return "image/gif"
	}
	return "image/png"
}

// ParseFormat accepts a config name, an extension or "Bitmap", ignoring case
// and surrounding space.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return Png, nil
	case "bmp", "bitmap":
		return Bmp, nil
	case "jpeg", "jpg":
		return Jpeg, nil
	case "gif":
		return Gif, nil
	}
	return Png, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FromPath picks a format from a file extension.
func FromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) imaging() imaging.Format {
	switch f {
	case Bmp:
		return imaging.BMP
	case Jpeg:
		return imaging.JPEG
	case Gif:
		return imaging.GIF
	}
	return imaging.PNG
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, f Format) error {
	if f == Bmp {
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encode %s: %w", f, err)
		}
		return nil
	}
	if err := imaging.Encode(w, img, f.imaging(), imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Save encodes img to path, creating parent directories.
func Save(path string, img image.Image, f Format) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Decode reads any supported image, honouring EXIF orientation.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ToRGBA(img), nil
}

// Load decodes the image at path.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ToRGBA returns img as a zero-origin *image.RGBA, copying when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// FileName returns the default export name for a capture taken at t.
func FileName(f Format, t time.Time) string {
	return fmt.Sprintf("screenshot_%s.%s", t.Format("2006-01-02_15-04-05"), f.Ext())
}
