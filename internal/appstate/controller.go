package appstate

import (
	"image"
	"time"
	"unicode/utf8"

	"github.com/ideamans/go-l10n"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/markshot/internal/config"
	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/geom"
	_ "github.com/example/markshot/internal/i18n"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/scene"
	"github.com/example/markshot/internal/theme"
)

const messageDuration = 2 * time.Second

// controller applies window input to an editor session. It is owned by the
// event loop goroutine.
type controller struct {
	sess    *editor.Session
	theme   *theme.Theme
	buttons []button

	color    int
	text     string
	textSize float32
	editing  bool
	cursor   pointer.Cursor

	message      string
	messageUntil time.Time
	now          func() time.Time
}

func newController(sess *editor.Session, th *theme.Theme) *controller {
	c := &controller{
		sess:     sess,
		theme:    th,
		buttons:  layoutToolbar(),
		color:    theme.DefaultSwatch,
		textSize: editor.DefaultTextSize,
		now:      time.Now,
	}
	sess.SetColor(scene.FromColor(th.Swatch(c.color)))
	return c
}

func (c *controller) flash(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
}

func (c *controller) textChoice() editor.ToolChoice {
	return editor.TextChoice(c.text, c.textSize)
}

// apply runs cmd and reports whether the window should close.
func (c *controller) apply(cmd command) bool {
	switch cmd.act {
	case actTool:
		c.editing = cmd.tool == editor.ToolText
		if c.editing {
			c.sess.SetTool(c.textChoice())
			break
		}
		c.sess.SetTool(editor.ToolChoice{Kind: cmd.tool})
	case actColor:
		c.color = cmd.color
		c.sess.SetColor(scene.FromColor(c.theme.Swatch(cmd.color)))
	case actBeginCrop:
		if c.sess.Cropping() {
			break
		}
		c.editing = false
		if err := c.sess.BeginCrop(); err != nil {
			c.flash(err.Error())
		}
	case actEndCrop:
		c.sess.EndCrop()
	case actEscape:
		switch {
		case c.editing:
			c.editing = false
		case c.sess.Cropping():
			c.sess.CancelCrop()
		default:
			c.sess.SetTool(editor.ToolChoice{})
		}
	case actUndo:
		c.sess.Undo()
	case actSave:
		path, err := c.sess.Save()
		if err != nil {
			c.flash(l10n.T(editor.TitleSave))
			break
		}
		c.flash(l10n.F("Saved %s", config.CutPath(path)))
	case actCopy:
		if err := c.sess.Copy(); err != nil {
			c.flash(l10n.T(editor.TitleCopy))
			break
		}
		c.flash(l10n.T("Copied image to clipboard"))
	case actQuit:
		return true
	case actTextRune:
		c.text += string(cmd.r)
		c.sess.SetTool(c.textChoice())
	case actTextBackspace:
		if _, n := utf8.DecodeLastRuneInString(c.text); n > 0 {
			c.text = c.text[:len(c.text)-n]
		}
		c.sess.SetTool(c.textChoice())
	case actTextDone:
		c.editing = false
	case actTextSize:
		c.textSize = min(max(c.textSize+cmd.delta, editor.MinTextSize), editor.MaxTextSize)
		if c.sess.Tool().Kind == editor.ToolText {
			c.sess.SetTool(c.textChoice())
		}
	}
	return false
}

// mouse routes e to the toolbar or, within view, to the session. It reports
// whether the window should close.
func (c *controller) mouse(e mouse.Event, view image.Rectangle) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if p.Y < toolbarHeight {
		c.cursor = pointer.Unavailable
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			if b, ok := hitButton(c.buttons, p); ok {
				return c.apply(b.cmd)
			}
		}
		return false
	}
	var kind pointer.Kind
	switch {
	case e.Direction == mouse.DirNone:
		kind = pointer.Move
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		kind = pointer.Press
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		kind = pointer.Release
	default:
		return false
	}
	c.cursor = pointer.At(geom.Pt(e.X, e.Y))
	c.sess.HandleEvent(pointer.Event{Kind: kind}, geom.FromImage(view), c.cursor)
	return false
}

// status is the text of the bottom bar.
func (c *controller) status() string {
	if c.message != "" && c.now().Before(c.messageUntil) {
		return c.message
	}
	if c.sess.Cropping() {
		return l10n.T("Crop: drag to select, Enter to apply, Escape to cancel")
	}
	name := c.sess.Tool().Kind.String()
	if c.editing {
		name += ": " + c.text + "|"
	}
	return l10n.F("Tool: %s  Colour: %s", name, theme.SwatchNames[c.color])
}

func (c *controller) toolState() toolState {
	return toolState{tool: c.sess.Tool().Kind, color: c.color, cropping: c.sess.Cropping()}
}
