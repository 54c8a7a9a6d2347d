// Package script replays recorded pointer sessions against an editor
// session without a window.
//
// A script is YAML:
//
//	expect: {width: 800, height: 600}
//	widget: {width: 400, height: 300}
//	steps:
//	  - tool: rectangle
//	    color: orange
//	  - drag: {from: [10, 10], to: [120, 80], steps: 4}
//	  - crop: begin
//	  - drag: {from: [0, 0], to: [200, 150]}
//	  - crop: end
//	  - undo: true
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/scene"
	"github.com/example/markshot/internal/theme"
)

// ErrUnknownTool is returned for a tool name the editor does not offer.
var ErrUnknownTool = errors.New("unknown tool")

// Size is a width and height in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Point is an [x, y] position in widget coordinates.
type Point []float32

// Drag presses at From, moves to To in Steps increments and releases.
type Drag struct {
	From  Point `yaml:"from"`
	To    Point `yaml:"to"`
	Steps int   `yaml:"steps"`
}

// Step is one action. Exactly one action key should be set; a tool step
// may carry color, text and size.
type Step struct {
	Tool    string  `yaml:"tool,omitempty"`
	Color   string  `yaml:"color,omitempty"`
	Text    string  `yaml:"text,omitempty"`
	Size    float32 `yaml:"size,omitempty"`
	Press   Point   `yaml:"press,omitempty"`
	Move    Point   `yaml:"move,omitempty"`
	Release Point   `yaml:"release,omitempty"`
	Leave   bool    `yaml:"leave,omitempty"`
	Drag    *Drag   `yaml:"drag,omitempty"`
	Crop    string  `yaml:"crop,omitempty"`
	Undo    bool    `yaml:"undo,omitempty"`
}

// Script is a decoded session.
type Script struct {
	Expect *Size  `yaml:"expect,omitempty"`
	Widget *Size  `yaml:"widget,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// Decode reads a script. Unknown keys are rejected.
func Decode(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Run applies the steps to sess. Colour names resolve against th's palette
// first and then as hex or CSS names.
func (s *Script) Run(sess *editor.Session, th *theme.Theme) error {
	if !sess.HasImage() {
		return editor.ErrNoImage
	}
	size := sess.Original().Bounds().Size()
	if s.Expect != nil && (s.Expect.Width != size.X || s.Expect.Height != size.Y) {
		return fmt.Errorf("image is %dx%d, script expects %dx%d", size.X, size.Y, s.Expect.Width, s.Expect.Height)
	}
	r := runner{sess: sess, theme: th}
	if s.Widget != nil {
		r.bounds = geom.R(0, 0, float32(s.Widget.Width), float32(s.Widget.Height))
	}
	for i, step := range s.Steps {
		if err := r.step(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

type runner struct {
	sess   *editor.Session
	theme  *theme.Theme
	bounds geom.Rect
}

// widget is the event surface; it defaults to the displayed image size.
func (r *runner) widget() geom.Rect {
	if !r.bounds.Size().Empty() {
		return r.bounds
	}
	b := r.sess.Image().Bounds()
	return geom.R(0, 0, float32(b.Dx()), float32(b.Dy()))
}

func (r *runner) send(kind pointer.Kind, p Point) error {
	pt, err := p.geom()
	if err != nil {
		return err
	}
	r.sess.HandleEvent(pointer.Event{Kind: kind}, r.widget(), pointer.At(pt))
	return nil
}

func (r *runner) step(st Step) error {
	switch {
	case st.Tool != "":
		return r.tool(st)
	case st.Color != "":
		c, err := r.color(st.Color)
		if err != nil {
			return err
		}
		r.sess.SetColor(c)
	case st.Press != nil:
		return r.send(pointer.Press, st.Press)
	case st.Move != nil:
		return r.send(pointer.Move, st.Move)
	case st.Release != nil:
		return r.send(pointer.Release, st.Release)
	case st.Leave:
		r.sess.HandleEvent(pointer.Event{Kind: pointer.Move}, r.widget(), pointer.Unavailable)
	case st.Drag != nil:
		return r.drag(*st.Drag)
	case st.Crop != "":
		return r.crop(st.Crop)
	case st.Undo:
		r.sess.Undo()
	default:
		return fmt.Errorf("empty step")
	}
	return nil
}

func (r *runner) tool(st Step) error {
	kind, err := editor.ParseToolKind(st.Tool)
	if err != nil {
		return fmt.Errorf("%w %q", ErrUnknownTool, st.Tool)
	}
	if st.Color != "" {
		c, err := r.color(st.Color)
		if err != nil {
			return err
		}
		r.sess.SetColor(c)
	}
	if kind == editor.ToolText {
		r.sess.SetTool(editor.TextChoice(st.Text, st.Size))
		return nil
	}
	r.sess.SetTool(editor.ToolChoice{Kind: kind})
	return nil
}

func (r *runner) drag(d Drag) error {
	from, err := d.From.geom()
	if err != nil {
		return fmt.Errorf("drag from: %w", err)
	}
	to, err := d.To.geom()
	if err != nil {
		return fmt.Errorf("drag to: %w", err)
	}
	steps := max(d.Steps, 1)
	bounds := r.widget()
	r.sess.HandleEvent(pointer.Event{Kind: pointer.Press}, bounds, pointer.At(from))
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		p := from.Add(to.Sub(from).Mul(t))
		r.sess.HandleEvent(pointer.Event{Kind: pointer.Move}, bounds, pointer.At(p))
	}
	r.sess.HandleEvent(pointer.Event{Kind: pointer.Release}, bounds, pointer.At(to))
	return nil
}

func (r *runner) crop(op string) error {
	switch strings.ToLower(op) {
	case "begin":
		return r.sess.BeginCrop()
	case "end":
		r.sess.EndCrop()
	case "cancel":
		r.sess.CancelCrop()
	default:
		return fmt.Errorf("unknown crop operation %q", op)
	}
	return nil
}

func (r *runner) color(name string) (scene.Color, error) {
	if r.theme != nil {
		for i, swatch := range theme.SwatchNames {
			if strings.EqualFold(swatch, name) {
				return scene.FromColor(r.theme.Swatch(i)), nil
			}
		}
	}
	c, err := theme.ParseColor(name)
	if err != nil {
		return scene.Color{}, err
	}
	return scene.FromColor(c), nil
}

func (p Point) geom() (geom.Point, error) {
	if len(p) != 2 {
		return geom.Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(p))
	}
	return geom.Pt(p[0], p[1]), nil
}
