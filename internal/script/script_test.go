package script

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markshot/internal/annotate"
	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/scene"
	"github.com/example/markshot/internal/theme"
)

func newSession(t *testing.T) *editor.Session {
	t.Helper()
	s := editor.New()
	s.Load(image.NewRGBA(image.Rect(0, 0, 200, 100)))
	return s
}

func run(t *testing.T, src string, sess *editor.Session) error {
	t.Helper()
	sc, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return sc.Run(sess, theme.Default())
}

func TestRectangleAtHalfScale(t *testing.T) {
	sess := newSession(t)
	err := run(t, `
expect: {width: 200, height: 100}
widget: {width: 100, height: 50}
steps:
  - tool: rectangle
    color: orange
  - drag: {from: [10, 10], to: [60, 30], steps: 3}
`, sess)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	shapes := sess.Annotations().Shapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	rect, ok := shapes[0].(annotate.Rectangle)
	if !ok {
		t.Fatalf("shape is %T", shapes[0])
	}
	if rect.Bounds != geom.R(20, 20, 100, 40) {
		t.Fatalf("bounds = %+v", rect.Bounds)
	}
	if rect.Color != scene.FromColor(theme.Default().Orange) {
		t.Fatalf("color = %+v", rect.Color)
	}
	if h := sess.History(); len(h) != 1 || h[0].Kind != editor.EntryAnnotate {
		t.Fatalf("history = %+v", h)
	}
}

func TestCropAndUndo(t *testing.T) {
	sess := newSession(t)
	err := run(t, `
widget: {width: 100, height: 50}
steps:
  - crop: begin
  - drag: {from: [10, 5], to: [60, 30]}
  - crop: end
`, sess)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	r, ok := sess.LastCrop()
	if !ok || r != image.Rect(20, 10, 120, 60) {
		t.Fatalf("last crop = %v, %v", r, ok)
	}
	if b := sess.Image().Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("edited bounds = %v", b)
	}

	if err := run(t, "steps:\n  - undo: true\n", sess); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, ok := sess.LastCrop(); ok {
		t.Fatalf("crop survived undo")
	}
	if b := sess.Image().Bounds(); b.Dx() != 200 {
		t.Fatalf("edited bounds after undo = %v", b)
	}
}

func TestTextToolAndLeave(t *testing.T) {
	sess := newSession(t)
	err := run(t, `
steps:
  - tool: text
    text: hello
    size: 40
    color: "#00ff00"
  - move: [30, 30]
  - leave: true
  - press: [50, 40]
  - release: [50, 40]
`, sess)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.Tool().Size != editor.MaxTextSize {
		t.Fatalf("size = %v, want clamped %d", sess.Tool().Size, editor.MaxTextSize)
	}
	shapes := sess.Annotations().Shapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	txt := shapes[0].(annotate.Text)
	if txt.Content != "hello" || txt.Position != geom.Pt(50, 40) {
		t.Fatalf("text = %+v", txt)
	}
	if txt.Color != scene.RGB(0, 1, 0) {
		t.Fatalf("color = %+v", txt.Color)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		target  error
		message string
	}{
		{"unknown tool", "steps:\n  - tool: laser\n", ErrUnknownTool, "step 1"},
		{"size mismatch", "expect: {width: 1, height: 1}\n", nil, "expects 1x1"},
		{"empty step", "steps:\n  - {}\n", nil, "empty step"},
		{"bad point", "steps:\n  - press: [1]\n", nil, "2 coordinates"},
		{"bad crop", "steps:\n  - crop: sideways\n", nil, "sideways"},
		{"bad color", "steps:\n  - color: notacolour\n", nil, "notacolour"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(t, tc.src, newSession(t))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Fatalf("err = %v, want %v", err, tc.target)
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Fatalf("err = %q, want it to mention %q", err, tc.message)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("steps:\n  - presss: [1, 2]\n")); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestRunWithoutImage(t *testing.T) {
	sc := &Script{}
	if err := sc.Run(editor.New(), nil); !errors.Is(err, editor.ErrNoImage) {
		t.Fatalf("err = %v, want ErrNoImage", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - undo: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Steps) != 1 || !sc.Steps[0].Undo {
		t.Fatalf("steps = %+v", sc.Steps)
	}
}
