package main

import (
	"flag"
	"fmt"
	"image"
	"path/filepath"

	"github.com/example/markshot/internal/appstate"
	"github.com/example/markshot/internal/imageio"
)

// runWindow shows the editor window; replaced in tests.
var runWindow = func(st *appstate.AppState) { st.Run() }

// editCmd captures a screen, or opens a file, and edits it in a window.
type editCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	screen int
	delay  string
}

func newEditCmd(r *root) *editCmd {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.StringVar(&c.file, "file", "", "open this image instead of capturing a screen")
	fs.IntVar(&c.screen, "screen", r.config.Screen, "screen to capture, 1-based; 0 picks the primary")
	fs.StringVar(&c.delay, "delay", "", "wait before capturing: none, 3s, 5s or 10s (default from the rc file)")
	fs.Usage = usageFunc(c)
	return c
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	c := newEditCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && c.fs.NArg() == 1 {
		c.file = c.fs.Arg(0)
	} else if c.fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *editCmd) Run() error {
	var (
		img   *image.RGBA
		title string
	)
	if c.file != "" {
		loaded, err := imageio.Load(c.file)
		if err != nil {
			return fmt.Errorf("open %s: %w", c.file, err)
		}
		img, title = loaded, filepath.Base(c.file)
	} else {
		captured, scr, err := c.captureScreen(c.screen, c.delay)
		if err != nil {
			return err
		}
		img, title = captured, scr.Name
	}

	sess := c.newSession()
	sess.Load(img)
	runWindow(appstate.New(
		appstate.WithSession(sess),
		appstate.WithTheme(c.activeTheme),
		appstate.WithTitle("markshot - "+title),
	))
	return nil
}
