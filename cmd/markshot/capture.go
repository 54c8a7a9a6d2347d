package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/example/markshot/internal/compositor"
	"github.com/example/markshot/internal/imageio"
)

// captureCmd grabs one screen into a file, stdout or the clipboard.
type captureCmd struct {
	*root
	fs          *flag.FlagSet
	screen      int
	delay       string
	output      string
	format      string
	toStdout    bool
	toClipboard bool
	shadow      bool
}

func newCaptureCmd(r *root) *captureCmd {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.IntVar(&c.screen, "screen", r.config.Screen, "screen to capture, 1-based; 0 picks the primary")
	fs.StringVar(&c.delay, "delay", "", "wait before capturing: none, 3s, 5s or 10s (default from the rc file)")
	fs.StringVar(&c.output, "output", "", "write the capture to this file (default: a timestamped file in the save path)")
	fs.StringVar(&c.format, "format", "", "image format: png, bmp, jpeg or gif (default from the save record)")
	fs.BoolVar(&c.toStdout, "stdout", false, "write the image to stdout")
	fs.BoolVar(&c.toClipboard, "clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow")
	fs.Usage = usageFunc(c)
	return c
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	c := newCaptureCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.toStdout && c.toClipboard {
		return nil, errors.New("-stdout cannot be used with -clipboard")
	}
	if c.output != "" && (c.toStdout || c.toClipboard) {
		return nil, errors.New("-output cannot be used with -stdout or -clipboard")
	}
	if c.format != "" {
		if _, err := imageio.ParseFormat(c.format); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *captureCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *captureCmd) Run() error {
	if c.toStdout && isTerminal(stdout) {
		return errors.New(l10n.T("Refusing to write image data to a terminal"))
	}
	img, scr, err := c.captureScreen(c.screen, c.delay)
	if err != nil {
		return err
	}
	if c.shadow {
		img, _ = compositor.DropShadow(img, compositor.DefaultShadowOptions())
	}
	detail := l10n.F("screen %d", scr.Index)

	switch {
	case c.toClipboard:
		if err := clipboardWriteFn(img); err != nil {
			c.notifier.Error("Unable to copy image", err)
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		status(l10n.T("Copied image to clipboard"))
		c.notifier.Copy(detail)
	case c.toStdout:
		if err := imageio.Encode(stdout, img, c.outputFormat()); err != nil {
			return fmt.Errorf("write image to stdout: %w", err)
		}
	default:
		path := c.outputPath()
		if err := imageio.Save(path, img, c.outputFormat()); err != nil {
			c.notifier.Error("Unable to save image", err)
			return err
		}
		status(l10n.F("Wrote %s", path))
		c.notifier.Save(path)
	}
	return nil
}

// outputFormat is -format, else the -output extension, else the record.
func (c *captureCmd) outputFormat() imageio.Format {
	if f, err := imageio.ParseFormat(c.format); err == nil {
		return f
	}
	if c.output != "" {
		if f, err := imageio.FromPath(c.output); err == nil {
			return f
		}
	}
	return c.record.Format
}

func (c *captureCmd) outputPath() string {
	if c.output != "" {
		return c.output
	}
	return filepath.Join(c.record.SavePath, imageio.FileName(c.outputFormat(), nowFn()))
}
