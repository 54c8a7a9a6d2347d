package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/ideamans/go-l10n"

	"github.com/example/markshot/internal/hotkey"
	"github.com/example/markshot/internal/imageio"
	"github.com/example/markshot/internal/tray"
)

var (
	hotkeyListenFn = hotkey.Listen
	hotkeyRunFn    = hotkey.Run
	trayRunFn      = func(t *tray.Tray) { t.Run() }
	trayStopFn     = func(t *tray.Tray) { t.Stop() }
)

// trayCmd sits in the tray and captures on demand.
type trayCmd struct {
	*root
	fs      *flag.FlagSet
	binding string
	screen  int
	delay   string
	noIcon  bool

	busy atomic.Bool
}

func newTrayCmd(r *root) *trayCmd {
	fs := flag.NewFlagSet("tray", flag.ExitOnError)
	c := &trayCmd{root: r, fs: fs}
	fs.StringVar(&c.binding, "hotkey", r.config.Hotkey.Capture, "global capture hotkey, e.g. shift+d or ctrl+alt+p; empty disables it")
	fs.IntVar(&c.screen, "screen", r.config.Screen, "screen to capture, 1-based; 0 picks the primary")
	fs.StringVar(&c.delay, "delay", "", "wait before capturing: none, 3s, 5s or 10s (default from the rc file)")
	fs.BoolVar(&c.noIcon, "no-icon", false, "listen for the hotkey without a tray icon")
	fs.Usage = usageFunc(c)
	return c
}

func parseTrayCmd(args []string, r *root) (*trayCmd, error) {
	c := newTrayCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.noIcon && c.binding == "" {
		return nil, errors.New("-no-icon needs a hotkey")
	}
	return c, nil
}

func (c *trayCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *trayCmd) Run() error {
	var (
		b   hotkey.Binding
		err error
	)
	if c.binding != "" {
		if b, err = hotkey.Parse(c.binding); err != nil {
			return err
		}
	}
	ctx, cancel := context.WithCancel(c.ctx)
	defer cancel()

	if c.noIcon {
		var listenErr error
		hotkeyRunFn(func() {
			status(l10n.F("Press %s to capture, or use the tray menu", b))
			listenErr = hotkeyListenFn(ctx, b, c.trigger)
		})
		return listenErr
	}

	t := &tray.Tray{
		OnCapture: c.trigger,
		OnQuit:    cancel,
	}
	if c.binding != "" {
		t.Hotkey = b.String()
		t.OnReady = func() {
			status(l10n.F("Press %s to capture, or use the tray menu", b))
			go c.listen(ctx, b, hotkeyListenFn)
		}
	}
	stop := trayStopFn
	go func() {
		<-ctx.Done()
		stop(t)
	}()
	trayRunFn(t)
	return nil
}

func (c *trayCmd) listen(ctx context.Context, b hotkey.Binding, listen func(context.Context, hotkey.Binding, func()) error) {
	if err := listen(ctx, b, c.trigger); err != nil {
		log.Printf("hotkey %s: %v", b, err)
	}
}

// trigger runs one capture in the background. Presses while a capture is
// running are dropped.
func (c *trayCmd) trigger() {
	if !c.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.busy.Store(false)
		if _, err := c.captureAndSave(); err != nil {
			log.Printf("tray capture: %v", err)
		}
	}()
}

// captureAndSave grabs the configured screen into the save path.
func (c *trayCmd) captureAndSave() (string, error) {
	img, _, err := c.captureScreen(c.screen, c.delay)
	if err != nil {
		return "", err
	}
	path := filepath.Join(c.record.SavePath, imageio.FileName(c.record.Format, nowFn()))
	if err := imageio.Save(path, img, c.record.Format); err != nil {
		c.notifier.Error("Unable to save image", err)
		return "", fmt.Errorf("save capture: %w", err)
	}
	status(l10n.F("Wrote %s", path))
	c.notifier.Save(path)
	return path, nil
}
