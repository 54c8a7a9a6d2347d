// Package assets draws the markshot application icon.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sort"
	"sync"

	"github.com/fogleman/gg"
)

// Sizes lists the icon sizes served by IconImage and IconPNG.
var Sizes = []int{16, 32, 48, 64, 128, 256}

var (
	mu        sync.Mutex
	pngImages = map[int]image.Image{}
	pngData   = map[int][]byte{}
)

// draw paints a rounded frame with a crop corner and a red arrow, scaled to size.
func draw(size int) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)
	dc.DrawRoundedRectangle(s*0.06, s*0.06, s*0.88, s*0.88, s*0.16)
	dc.SetRGB255(33, 37, 43)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(s * 0.07)
	dc.SetLineCap(gg.LineCapSquare)
	dc.MoveTo(s*0.25, s*0.45)
	dc.LineTo(s*0.25, s*0.25)
	dc.LineTo(s*0.45, s*0.25)
	dc.MoveTo(s*0.75, s*0.55)
	dc.LineTo(s*0.75, s*0.75)
	dc.LineTo(s*0.55, s*0.75)
	dc.Stroke()

	dc.SetRGB255(207, 46, 46)
	dc.SetLineWidth(s * 0.08)
	dc.SetLineCap(gg.LineCapRound)
	dc.MoveTo(s*0.36, s*0.64)
	dc.LineTo(s*0.64, s*0.36)
	dc.MoveTo(s*0.46, s*0.36)
	dc.LineTo(s*0.64, s*0.36)
	dc.LineTo(s*0.64, s*0.54)
	dc.Stroke()
	return dc.Image()
}

func load(size int) (image.Image, []byte, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("icon size %d", size)
	}
	mu.Lock()
	defer mu.Unlock()
	if img, ok := pngImages[size]; ok {
		return img, pngData[size], nil
	}
	img := draw(size)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, nil, fmt.Errorf("encode %dpx icon: %w", size, err)
	}
	pngImages[size] = img
	pngData[size] = buf.Bytes()
	return img, pngData[size], nil
}

// IconImage returns the icon drawn at the requested size.
func IconImage(size int) (image.Image, error) {
	img, _, err := load(size)
	return img, err
}

// IconPNG returns a copy of the PNG bytes for the requested icon size.
func IconPNG(size int) ([]byte, error) {
	_, data, err := load(size)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), data...), nil
}

// IconSizes lists the standard icon sizes in ascending order.
func IconSizes() []int {
	sizes := append([]int(nil), Sizes...)
	sort.Ints(sizes)
	return sizes
}
