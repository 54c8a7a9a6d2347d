// Package theme holds the editor colours: the window chrome, the crop overlay
// and the eight-swatch annotation palette.
package theme

import (
	"image/color"
	"reflect"
)

// Theme defines the colour set of the editor.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the image
	Foreground color.RGBA // status text

	// Toolbar
	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonActive      color.RGBA
	ButtonText        color.RGBA

	// Crop
	CropOverlay color.RGBA
	CropHandle  color.RGBA

	// Palette, in swatch order
	White  color.RGBA
	Black  color.RGBA
	Red    color.RGBA
	Orange color.RGBA
	Yellow color.RGBA
	Green  color.RGBA
	Blue   color.RGBA
	Violet color.RGBA
}

// SwatchNames lists the palette entries in order.
var SwatchNames = []string{"White", "Black", "Red", "Orange", "Yellow", "Green", "Blue", "Violet"}

// DefaultSwatch is the index of the colour selected at start.
const DefaultSwatch = 2

// Default returns the built-in dark theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{32, 34, 37, 255},
		Foreground:        color.RGBA{230, 230, 230, 255},
		ToolbarBackground: color.RGBA{47, 49, 54, 255},
		ButtonBackground:  color.RGBA{64, 68, 75, 255},
		ButtonActive:      color.RGBA{88, 101, 242, 255},
		ButtonText:        color.RGBA{255, 255, 255, 255},
		CropOverlay:       color.RGBA{0, 0, 0, 204},
		CropHandle:        color.RGBA{255, 255, 255, 255},
		White:             color.RGBA{255, 255, 255, 255},
		Black:             color.RGBA{0, 0, 0, 255},
		Red:               color.RGBA{207, 46, 46, 255},
		Orange:            color.RGBA{255, 105, 0, 255},
		Yellow:            color.RGBA{252, 186, 0, 255},
		Green:             color.RGBA{0, 209, 133, 255},
		Blue:              color.RGBA{5, 148, 227, 255},
		Violet:            color.RGBA{156, 82, 224, 255},
	}
}

// Palette returns the swatches in menu order.
func (t *Theme) Palette() []color.RGBA {
	return []color.RGBA{t.White, t.Black, t.Red, t.Orange, t.Yellow, t.Green, t.Blue, t.Violet}
}

// Swatch returns palette entry i, wrapping out of range indexes to the
// default swatch.
func (t *Theme) Swatch(i int) color.RGBA {
	p := t.Palette()
	if i < 0 || i >= len(p) {
		return p[DefaultSwatch]
	}
	return p[i]
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// Keys returns the colour field names in declaration order.
func Keys() []string {
	typ := reflect.TypeOf(Theme{})
	var keys []string
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); f.Type == rgbaType {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// Color returns the colour stored under key, matched case-insensitively.
func (t *Theme) Color(key string) (color.RGBA, bool) {
	f, ok := t.field(key)
	if !ok {
		return color.RGBA{}, false
	}
	return f.Interface().(color.RGBA), true
}

func (t *Theme) field(key string) (reflect.Value, bool) {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type == rgbaType && equalFold(f.Name, key) {
			return val.Field(i), true
		}
	}
	return reflect.Value{}, false
}
