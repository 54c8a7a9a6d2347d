// Package capture enumerates screens and grabs their pixels.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"
)

// ErrNoScreens is returned when the display layout reports no usable screen.
var ErrNoScreens = errors.New("no screens available")

// Screen describes one monitor in the display layout. Index starts at 1.
type Screen struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

func (s Screen) String() string {
	p := ""
	if s.Primary {
		p = " (primary)"
	}
	return fmt.Sprintf("%d: %s %dx%d+%d+%d%s", s.Index, s.Name, s.Rect.Dx(), s.Rect.Dy(), s.Rect.Min.X, s.Rect.Min.Y, p)
}

// Delay is the wait between a capture request and the grab.
type Delay time.Duration

const (
	DelayNone    = Delay(500 * time.Millisecond)
	DelayThree   = Delay(3 * time.Second)
	DelayFive    = Delay(5 * time.Second)
	DelayTen     = Delay(10 * time.Second)
	defaultDelay = DelayNone
)

// Delays lists the selectable delays in menu order.
var Delays = []Delay{DelayNone, DelayThree, DelayFive, DelayTen}

func (d Delay) String() string {
	switch d {
	case DelayNone:
		return "none"
	case DelayThree:
		return "3s"
	case DelayFive:
		return "5s"
	case DelayTen:
		return "10s"
	}
	return time.Duration(d).String()
}

// ParseDelay accepts "none", "", "3", "3s", "5", "5s", "10" or "10s".
func ParseDelay(s string) (Delay, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch strings.TrimSuffix(v, "s") {
	case "", "none", "0":
		return DelayNone, nil
	case "3":
		return DelayThree, nil
	case "5":
		return DelayFive, nil
	case "10":
		return DelayTen, nil
	}
	return defaultDelay, fmt.Errorf("unknown delay %q", s)
}

// Wait blocks for the delay or until ctx is done.
func (d Delay) Wait(ctx context.Context) error {
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var (
	listScreensFn   = func() ([]Screen, error) { return backend.Screens() }
	captureScreenFn = captureScreen
)

// Screens lists the connected screens.
func Screens() ([]Screen, error) {
	screens, err := listScreensFn()
	if err != nil {
		return nil, err
	}
	if len(screens) == 0 {
		return nil, ErrNoScreens
	}
	return screens, nil
}

// FindScreen returns the screen with the given index. Index 0 selects the
// primary screen. Any index without a match selects the first screen.
func FindScreen(screens []Screen, index int) (Screen, error) {
	if len(screens) == 0 {
		return Screen{}, ErrNoScreens
	}
	for _, s := range screens {
		if s.Index == index || (index == 0 && s.Primary) {
			return s, nil
		}
	}
	return screens[0], nil
}

// Capture waits for delay and then grabs screen index.
func Capture(ctx context.Context, index int, delay Delay) (*image.RGBA, Screen, error) {
	screens, err := Screens()
	if err != nil {
		return nil, Screen{}, err
	}
	screen, err := FindScreen(screens, index)
	if err != nil {
		return nil, Screen{}, err
	}
	if err := delay.Wait(ctx); err != nil {
		return nil, Screen{}, err
	}
	img, err := captureScreenFn(screen)
	if err != nil {
		return nil, Screen{}, fmt.Errorf("capture screen %d: %w", screen.Index, err)
	}
	return img, screen, nil
}

// captureScreen grabs the root window directly and falls back to the
// desktop portal when that is refused.
func captureScreen(screen Screen) (*image.RGBA, error) {
	if !runningOnWayland() {
		img, err := backend.Grab(screen.Rect)
		if err == nil {
			return img, nil
		}
		shot, perr := portalScreenshot()
		if perr != nil {
			return nil, fmt.Errorf("direct grab: %v; portal fallback: %w", err, perr)
		}
		return cropToRect(shot, screen.Rect)
	}
	shot, err := portalScreenshot()
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, screen.Rect)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("screen outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
