// Package appstate hosts an editor session in a shiny window.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/markshot/internal/compositor"
	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/render"
	"github.com/example/markshot/internal/scene"
	"github.com/example/markshot/internal/theme"
)

const (
	maxWindowWidth  = 1600
	maxWindowHeight = 1000
	labelSize       = 13
)

// AppState holds the window configuration.
type AppState struct {
	Session *editor.Session
	Theme   *theme.Theme
	Title   string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the session edited in the window.
func WithSession(s *editor.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState.
func New(opts ...Option) *AppState {
	a := &AppState{Title: "markshot"}
	for _, opt := range opts {
		opt(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Session == nil {
		a.Session = editor.New()
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// windowSize fits the image plus chrome, wide enough for the toolbar.
func windowSize(img image.Point, buttons []button) (int, int) {
	minW := 0
	for _, b := range buttons {
		minW = max(minW, b.rect.Max.X+gap)
	}
	w := min(max(img.X, minW), maxWindowWidth)
	h := min(img.Y+toolbarHeight+statusHeight, maxWindowHeight)
	return w, h
}

// Main runs the event loop on s until the window is closed.
func (a *AppState) Main(s screen.Screen) {
	sess := a.Session
	ctl := newController(sess, a.Theme)

	var imgSize image.Point
	if img := sess.Image(); img != nil {
		imgSize = img.Bounds().Size()
	}
	width, height := windowSize(imgSize, ctl.buttons)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		fonts := render.NewFontBook()
		p := painter{raster: render.New(fonts), face: fonts.Face(render.FontRegular, labelSize), theme: a.Theme}
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			p.drawFrame(ctx, s, w, st)
			cancel()
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	view := func() image.Rectangle {
		img := sess.Image()
		if img == nil {
			return image.Rectangle{}
		}
		canvas := canvasRect(width, height)
		return imageRect(img.Bounds().Size(), canvas, fitZoom(img.Bounds().Size(), canvas))
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case key.Event:
			if ctl.apply(commandForKey(e, ctl.editing)) {
				return
			}
			w.Send(paint.Event{})
		case mouse.Event:
			if ctl.mouse(e, view()) {
				return
			}
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			v := view()
			st := paintState{
				width:  width,
				height: height,
				image:  sess.Image(),
				view:   v,
				tools:  ctl.toolState(),
				status: ctl.status(),
			}
			if !v.Empty() {
				st.overlay = sess.Draw(geom.FromImage(v), ctl.cursor)
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case error:
			log.Print(e)
		}
	}
}

// frameDropThreshold bounds how many in-flight frames a new paint may cancel
// in a row, so a steady event stream still publishes.
const frameDropThreshold = 3

// paintState is a snapshot of everything a frame needs.
type paintState struct {
	width, height int
	image         *image.RGBA
	view          image.Rectangle
	overlay       scene.Primitive
	tools         toolState
	status        string
}

// painter owns the rasterizer and chrome face; it runs on the paint goroutine.
type painter struct {
	raster  *render.Rasterizer
	face    font.Face
	theme   *theme.Theme
	buttons []button
}

func (p *painter) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	fill(dst, dst.Bounds(), p.theme.Background)
	if st.image != nil && !st.view.Empty() {
		draw.ApproxBiLinear.Scale(dst, st.view, st.image, st.image.Bounds(), draw.Src, nil)
	}
	if ctx.Err() != nil {
		return
	}
	if st.overlay != nil {
		sub := dst.SubImage(st.view).(*image.RGBA)
		p.raster.Draw(sub, compositor.FixColors(st.overlay))
	}
	if ctx.Err() != nil {
		return
	}

	if p.buttons == nil {
		p.buttons = layoutToolbar()
	}
	drawToolbar(dst, p.face, p.theme, p.buttons, st.tools)
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	fill(dst, bar, p.theme.ToolbarBackground)
	label(dst, p.face, bar, st.status, p.theme.Foreground)
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
