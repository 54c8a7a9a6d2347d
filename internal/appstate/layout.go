package appstate

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/theme"
)

const (
	toolbarHeight = 32
	statusHeight  = 22
	buttonWidth   = 76
	swatchSize    = 20
	gap           = 6
)

// button is a toolbar control. swatch is -1 for non-colour buttons.
type button struct {
	label  string
	rect   image.Rectangle
	cmd    command
	swatch int
}

var toolButtons = []struct {
	label string
	cmd   command
}{
	{"R Rect", command{act: actTool, tool: editor.ToolRectangle}},
	{"A Arrow", command{act: actTool, tool: editor.ToolArrow}},
	{"T Text", command{act: actTool, tool: editor.ToolText}},
	{"P Pen", command{act: actTool, tool: editor.ToolPen}},
	{"H Marker", command{act: actTool, tool: editor.ToolHighlighter}},
	{"C Crop", command{act: actBeginCrop}},
	{"Undo", command{act: actUndo}},
	{"Save", command{act: actSave}},
	{"Copy", command{act: actCopy}},
}

// layoutToolbar places the tool buttons from the left and the palette after
// them.
func layoutToolbar() []button {
	buttons := make([]button, 0, len(toolButtons)+len(theme.SwatchNames))
	x := gap
	h := toolbarHeight - 2*gap
	for _, tb := range toolButtons {
		buttons = append(buttons, button{
			label:  tb.label,
			rect:   image.Rect(x, gap, x+buttonWidth, gap+h),
			cmd:    tb.cmd,
			swatch: -1,
		})
		x += buttonWidth + gap
	}
	x += gap
	top := (toolbarHeight - swatchSize) / 2
	for i := range theme.SwatchNames {
		buttons = append(buttons, button{
			rect:   image.Rect(x, top, x+swatchSize, top+swatchSize),
			cmd:    command{act: actColor, color: i},
			swatch: i,
		})
		x += swatchSize + 2
	}
	return buttons
}

// hitButton returns the button under p.
func hitButton(buttons []button, p image.Point) (button, bool) {
	for _, b := range buttons {
		if p.In(b.rect) {
			return b, true
		}
	}
	return button{}, false
}

// canvasRect is the area between the toolbar and the status bar.
func canvasRect(winW, winH int) image.Rectangle {
	return image.Rect(0, toolbarHeight, winW, max(toolbarHeight, winH-statusHeight))
}

// fitZoom scales img to fit the canvas without enlarging it.
func fitZoom(img image.Point, canvas image.Rectangle) float64 {
	if img.X <= 0 || img.Y <= 0 || canvas.Empty() {
		return 1
	}
	zx := float64(canvas.Dx()) / float64(img.X)
	zy := float64(canvas.Dy()) / float64(img.Y)
	return min(zx, zy, 1)
}

// imageRect centres the image at zoom within the canvas.
func imageRect(img image.Point, canvas image.Rectangle, zoom float64) image.Rectangle {
	w := int(float64(img.X) * zoom)
	h := int(float64(img.Y) * zoom)
	x0 := canvas.Min.X + (canvas.Dx()-w)/2
	y0 := canvas.Min.Y + (canvas.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// label draws s vertically centred in r, left aligned with a small inset.
func label(dst draw.Image, face font.Face, r image.Rectangle, s string, c color.Color) {
	m := face.Metrics()
	asc, desc := m.Ascent.Ceil(), m.Descent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	y := r.Min.Y + (r.Dy()-asc-desc)/2 + asc
	d.Dot = fixed.P(r.Min.X+gap, y)
	d.DrawString(s)
}

// drawToolbar paints the buttons, highlighting the active tool and colour.
func drawToolbar(dst draw.Image, face font.Face, th *theme.Theme, buttons []button, current toolState) {
	fill(dst, image.Rect(0, 0, dst.Bounds().Dx(), toolbarHeight), th.ToolbarBackground)
	for _, b := range buttons {
		if b.swatch >= 0 {
			fill(dst, b.rect, th.Swatch(b.swatch))
			if b.swatch == current.color {
				outline(dst, b.rect.Inset(-2), th.ButtonActive)
			}
			continue
		}
		bg := th.ButtonBackground
		if current.active(b.cmd) {
			bg = th.ButtonActive
		}
		fill(dst, b.rect, bg)
		label(dst, face, b.rect, b.label, th.ButtonText)
	}
}

// toolState is the toolbar selection shown in a frame.
type toolState struct {
	tool     editor.ToolKind
	color    int
	cropping bool
}

func (s toolState) active(c command) bool {
	switch c.act {
	case actTool:
		return !s.cropping && c.tool == s.tool
	case actBeginCrop:
		return s.cropping
	}
	return false
}
