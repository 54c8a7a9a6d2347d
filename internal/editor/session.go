// Package editor ties the annotation and crop engines to one screenshot:
// history, tool selection, the crop flow and export.
package editor

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/example/markshot/internal/annotate"
	"github.com/example/markshot/internal/compositor"
	"github.com/example/markshot/internal/crop"
	"github.com/example/markshot/internal/geom"
	"github.com/example/markshot/internal/imageio"
	"github.com/example/markshot/internal/pointer"
	"github.com/example/markshot/internal/scene"
)

// MinCropRatio is the smallest crop side as a fraction of the image side.
const MinCropRatio = 0.03

// ErrNoImage is returned by operations that need a loaded screenshot.
var ErrNoImage = errors.New("no screenshot loaded")

// EntryKind tags a history entry.
type EntryKind int

const (
	EntryAnnotate EntryKind = iota
	EntryCrop
)

// Entry is one undoable edit. Crop holds the pixel rectangle for EntryCrop.
type Entry struct {
	Kind EntryKind
	Crop image.Rectangle
}

// Notifier receives the outcome of export operations.
type Notifier interface {
	Save(path string)
	Copy(detail string)
	Error(title string, err error)
}

// Notice titles passed to Notifier.Error.
const (
	TitleRender = "Unable to render image"
	TitleSave   = "Unable to save image"
	TitleCopy   = "Unable to copy image"
)

type nopNotifier struct{}

func (nopNotifier) Save(string)         {}
func (nopNotifier) Copy(string)         {}
func (nopNotifier) Error(string, error) {}

// Session is one editing session. It is not safe for concurrent use; hosts
// that export in the background work on the image returned by Render.
type Session struct {
	original *image.RGBA
	edited   *image.RGBA

	annotations *annotate.Engine
	cropTool    *crop.Tool
	history     []Entry

	choice ToolChoice
	color  scene.Color

	saveDir string
	format  imageio.Format
	shadow  *compositor.ShadowOptions

	comp      *compositor.Compositor
	notifier  Notifier
	clipboard func(image.Image) error
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithSaveDir sets the directory used by Save.
func WithSaveDir(dir string) Option { return func(s *Session) { s.saveDir = dir } }

// WithFormat sets the export format used by Save.
func WithFormat(f imageio.Format) Option { return func(s *Session) { s.format = f } }

// WithColor sets the initial tool colour.
func WithColor(c scene.Color) Option { return func(s *Session) { s.color = c } }

// WithNotifier routes export outcomes to n.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClipboard sets the function used by Copy.
func WithClipboard(fn func(image.Image) error) Option {
	return func(s *Session) { s.clipboard = fn }
}

// WithCompositor replaces the default compositor.
func WithCompositor(c *compositor.Compositor) Option {
	return func(s *Session) {
		if c != nil {
			s.comp = c
		}
	}
}

// WithShadow adds a drop shadow to exported images.
func WithShadow(opts compositor.ShadowOptions) Option {
	return func(s *Session) { s.shadow = &opts }
}

// WithClock replaces time.Now for file names.
func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		annotations: annotate.New(geom.Size{}),
		color:       scene.RGB(.81, .18, .18),
		notifier:    nopNotifier{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.comp == nil {
		s.comp = compositor.New(nil)
	}
	return s
}

// Load starts editing img, discarding annotations, tool, crop and history.
func (s *Session) Load(img image.Image) {
	s.original = imageio.ToRGBA(img)
	s.edited = s.original
	size := s.original.Bounds().Size()
	s.annotations.ClearAll()
	s.annotations.SetImageSize(geom.Sz(float32(size.X), float32(size.Y)))
	s.choice = ToolChoice{}
	s.cropTool = nil
	s.history = nil
}

// HasImage reports whether a screenshot is loaded.
func (s *Session) HasImage() bool { return s.original != nil }

// Original returns the unedited screenshot.
func (s *Session) Original() *image.RGBA { return s.original }

// Image returns the pixels to display under the active engine.
func (s *Session) Image() *image.RGBA { return s.edited }

// Annotations exposes the annotation engine.
func (s *Session) Annotations() *annotate.Engine { return s.annotations }

// Cropping reports whether a crop selection is in progress.
func (s *Session) Cropping() bool { return s.cropTool != nil }

// CropTool returns the active crop engine, or nil.
func (s *Session) CropTool() *crop.Tool { return s.cropTool }

// History returns a copy of the undo stack, oldest first.
func (s *Session) History() []Entry {
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// Tool returns the selected tool.
func (s *Session) Tool() ToolChoice { return s.choice }

// Color returns the selected colour.
func (s *Session) Color() scene.Color { return s.color }

// Format returns the export format.
func (s *Session) Format() imageio.Format { return s.format }

// SetFormat changes the export format.
func (s *Session) SetFormat(f imageio.Format) { s.format = f }

// SaveDir returns the directory used by Save.
func (s *Session) SaveDir() string { return s.saveDir }

// SetSaveDir changes the directory used by Save.
func (s *Session) SetSaveDir(dir string) { s.saveDir = dir }

// SetTool selects a tool and re-issues it to the annotation engine.
func (s *Session) SetTool(t ToolChoice) {
	if t.Kind == ToolText {
		t.Size = clampSize(t.Size)
	}
	s.choice = t
	s.applyTool()
}

// SetColor changes the tool colour.
func (s *Session) SetColor(c scene.Color) {
	s.color = c
	s.applyTool()
}

func (s *Session) applyTool() {
	if s.choice.Kind == ToolNone {
		s.annotations.SetTool(nil)
		return
	}
	s.annotations.SetTool(s.choice.Spec(s.color))
}

// HandleEvent routes a pointer event to the crop engine while cropping and
// to the annotation engine otherwise. It reports whether it was consumed.
func (s *Session) HandleEvent(ev pointer.Event, bounds geom.Rect, cursor pointer.Cursor) bool {
	if s.cropTool != nil {
		return s.cropTool.HandleEvent(ev, bounds, cursor)
	}
	consumed, committed := s.annotations.HandleEvent(ev, bounds, cursor)
	if committed {
		s.history = append(s.history, Entry{Kind: EntryAnnotate})
	}
	return consumed
}

// Draw returns the overlay for the active engine.
func (s *Session) Draw(bounds geom.Rect, cursor pointer.Cursor) scene.Primitive {
	if s.cropTool != nil {
		return s.cropTool.Draw(bounds)
	}
	return s.annotations.Draw(bounds, cursor)
}

// Interaction returns the mouse cursor for the active engine.
func (s *Session) Interaction(bounds geom.Rect, cursor pointer.Cursor) pointer.Interaction {
	if s.cropTool != nil {
		return s.cropTool.Interaction(bounds, cursor)
	}
	return s.annotations.Interaction(bounds, cursor)
}

// LastCrop returns the most recent crop in history.
func (s *Session) LastCrop() (image.Rectangle, bool) {
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Kind == EntryCrop {
			return s.history[i].Crop, true
		}
	}
	return image.Rectangle{}, false
}

// Render flattens the annotations onto the original at full resolution and
// applies the last crop.
func (s *Session) Render() (*image.RGBA, error) {
	if s.original == nil {
		return nil, ErrNoImage
	}
	var cropRect *image.Rectangle
	if r, ok := s.LastCrop(); ok {
		cropRect = &r
	}
	return s.comp.Flatten(s.annotations, s.original, cropRect)
}

func (s *Session) fullRect() image.Rectangle {
	return image.Rectangle{Max: s.original.Bounds().Size()}
}

// applyCrop shows r of the original, or all of it when r is nil.
func (s *Session) applyCrop(r *image.Rectangle) {
	if s.original == nil {
		return
	}
	area := s.fullRect()
	if r != nil {
		area = r.Intersect(area)
	}
	s.edited = s.original
	if area != s.fullRect() {
		cropped, err := compositor.Crop(s.original, area)
		if err != nil {
			// Empty selections fall back to the full view.
			s.notifier.Error(TitleRender, err)
			area = s.fullRect()
		} else {
			s.edited = cropped
		}
	}
	s.annotations.SetCropArea(geom.FromImage(area))
}

func (s *Session) reapplyLastCrop() {
	if r, ok := s.LastCrop(); ok {
		s.applyCrop(&r)
		return
	}
	s.applyCrop(nil)
}

// BeginCrop shows the flattened image and starts a crop selection limited
// to the current crop, deselecting the drawing tool.
func (s *Session) BeginCrop() error {
	if s.original == nil {
		return ErrNoImage
	}
	rendered, err := s.Render()
	if err != nil {
		s.notifier.Error(TitleRender, err)
		return fmt.Errorf("render: %w", err)
	}
	s.edited = rendered

	bounds := s.fullRect()
	if r, ok := s.LastCrop(); ok {
		bounds = r
	}
	size := s.original.Bounds().Size()
	s.cropTool = crop.New(geom.FromImage(bounds), geom.Sz(float32(size.X)*MinCropRatio, float32(size.Y)*MinCropRatio))
	s.SetTool(ToolChoice{})
	return nil
}

// EndCrop applies the committed selection and records it. Without a
// selection the previous view is restored. It reports whether a crop was
// applied.
func (s *Session) EndCrop() bool {
	if s.cropTool == nil {
		return false
	}
	r, ok := s.cropTool.CropRect()
	s.cropTool = nil
	if !ok {
		s.reapplyLastCrop()
		return false
	}
	rect := r.Snap()
	s.applyCrop(&rect)
	s.history = append(s.history, Entry{Kind: EntryCrop, Crop: rect})
	return true
}

// CancelCrop discards the selection and restores the previous view.
func (s *Session) CancelCrop() {
	if s.cropTool == nil {
		return
	}
	s.cropTool = nil
	s.reapplyLastCrop()
}

// Undo reverts the last edit. It reports whether anything was undone.
func (s *Session) Undo() bool {
	if s.cropTool != nil || len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	switch last.Kind {
	case EntryAnnotate:
		s.annotations.UndoLast()
	case EntryCrop:
		s.reapplyLastCrop()
	}
	return true
}

func (s *Session) export() (*image.RGBA, error) {
	img, err := s.Render()
	if err != nil {
		return nil, err
	}
	if s.shadow != nil {
		img, _ = compositor.DropShadow(img, *s.shadow)
	}
	return img, nil
}

// Save writes the rendered image into the save directory under a
// timestamped name and returns the path.
func (s *Session) Save() (string, error) {
	path := filepath.Join(s.saveDir, imageio.FileName(s.format, s.now()))
	if err := s.saveTo(path, s.format); err != nil {
		return "", err
	}
	return path, nil
}

// SaveAs writes the rendered image to path. The format follows the
// extension, falling back to the session format.
func (s *Session) SaveAs(path string) error {
	f, err := imageio.FromPath(path)
	if err != nil {
		f = s.format
	}
	return s.saveTo(path, f)
}

// SaveFormat writes the rendered image to path in format f.
func (s *Session) SaveFormat(path string, f imageio.Format) error {
	return s.saveTo(path, f)
}

func (s *Session) saveTo(path string, f imageio.Format) error {
	img, err := s.export()
	if err != nil {
		s.notifier.Error(TitleSave, err)
		return err
	}
	if err := imageio.Save(path, img, f); err != nil {
		s.notifier.Error(TitleSave, err)
		return err
	}
	s.notifier.Save(path)
	return nil
}

// Copy places the rendered image on the clipboard.
func (s *Session) Copy() error {
	if s.clipboard == nil {
		err := errors.New("clipboard unavailable")
		s.notifier.Error(TitleCopy, err)
		return err
	}
	img, err := s.export()
	if err != nil {
		s.notifier.Error(TitleCopy, err)
		return err
	}
	if err := s.clipboard(img); err != nil {
		s.notifier.Error(TitleCopy, err)
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	s.notifier.Copy("image")
	return nil
}
