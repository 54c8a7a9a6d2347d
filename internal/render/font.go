package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/example/markshot/internal/scene"
)

// Built-in faces.
const (
	FontRegular scene.Font = "regular"
	FontBold    scene.Font = "bold"
	FontMono    scene.Font = "mono"
)

type faceKey struct {
	font scene.Font
	size float64
}

// FontBook resolves font names to faces, caching one face per size.
type FontBook struct {
	fonts map[scene.Font]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFontBook returns a book holding the Go font family.
func NewFontBook() *FontBook {
	b := &FontBook{
		fonts: map[scene.Font]*opentype.Font{},
		faces: map[faceKey]font.Face{},
	}
	for name, ttf := range map[scene.Font][]byte{
		FontRegular: goregular.TTF,
		FontBold:    gobold.TTF,
		FontMono:    gomono.TTF,
	} {
		// The embedded Go fonts always parse.
		_ = b.Register(name, ttf)
	}
	return b
}

// Register parses an OpenType or TrueType font and makes it available under
// name.
func (b *FontBook) Register(name scene.Font, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	b.fonts[name] = f
	for k := range b.faces {
		if k.font == name {
			delete(b.faces, k)
		}
	}
	return nil
}

// Names lists the registered fonts.
func (b *FontBook) Names() []scene.Font {
	out := make([]scene.Font, 0, len(b.fonts))
	for n := range b.fonts {
		out = append(out, n)
	}
	return out
}

// Face returns a face for name at size pixels. Unknown names fall back to
// the regular face.
func (b *FontBook) Face(name scene.Font, size float64) font.Face {
	f, ok := b.fonts[name]
	if !ok {
		name = FontRegular
		f = b.fonts[name]
	}
	if f == nil || size <= 0 {
		return nil
	}
	key := faceKey{name, size}
	if face, ok := b.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	b.faces[key] = face
	return face
}
