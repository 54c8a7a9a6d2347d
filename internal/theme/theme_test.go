package theme

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#112233", color.RGBA{0x11, 0x22, 0x33, 0xFF}},
		{"#11223344", color.RGBA{0x11, 0x22, 0x33, 0x44}},
		{"Tomato", color.RGBA{0xFF, 0x63, 0x47, 0xFF}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"#12", "nosuchcolour", "#GGGGGG"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	in := Default()
	in.Name = "mine"
	in.Red = color.RGBA{1, 2, 3, 255}
	in.CropOverlay = color.RGBA{0, 0, 0, 100}

	var buf bytes.Buffer
	if _, err := in.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch:\n%+v\n%+v", out, in)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := Embedded()
	if len(names) == 0 {
		t.Fatal("no embedded themes")
	}
	l := &Loader{}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Errorf("Load(%q): %v", n, err)
			continue
		}
		if th.Name != n {
			t.Errorf("theme %q reports name %q", n, th.Name)
		}
	}
	pastel, err := l.Load("pastel")
	if err != nil {
		t.Fatalf("Load pastel: %v", err)
	}
	if pastel.Red != (color.RGBA{0xF0, 0x80, 0x80, 0xFF}) {
		t.Errorf("pastel red %v", pastel.Red)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.theme"), []byte("Name: custom\nRed: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	inline := Default()
	inline.Name = "inline"
	l := &Loader{ConfigDir: dir, Inline: map[string]*Theme{"inline": inline}}

	if th, err := l.Load("custom"); err != nil || th.Red != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("config dir theme: %v %v", th, err)
	}
	if th, err := l.Load("inline"); err != nil || th != inline {
		t.Errorf("inline theme: %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("missing theme loaded")
	}
	if th, _ := l.Load(""); th.Name != "Default" {
		t.Errorf("empty name gave %q", th.Name)
	}
}

func TestSwatch(t *testing.T) {
	th := Default()
	if th.Swatch(99) != th.Red || th.Swatch(-1) != th.Red {
		t.Error("out of range swatch did not fall back to red")
	}
	if len(SwatchNames) != len(th.Palette()) {
		t.Error("swatch names out of sync with palette")
	}
}
