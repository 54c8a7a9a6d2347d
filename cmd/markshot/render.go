package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/ideamans/go-l10n"

	"github.com/example/markshot/internal/compositor"
	"github.com/example/markshot/internal/editor"
	"github.com/example/markshot/internal/imageio"
	"github.com/example/markshot/internal/script"
)

// renderCmd replays a session script against an image and writes the
// flattened result.
type renderCmd struct {
	*root
	fs     *flag.FlagSet
	input  string
	script string
	output string
	format string
	shadow bool
}

func newRenderCmd(r *root) *renderCmd {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.StringVar(&c.script, "script", "", "YAML session script to replay")
	fs.StringVar(&c.output, "output", "", "output file, or - for stdout")
	fs.StringVar(&c.format, "format", "", "output format: png, bmp, jpeg or gif (default from the extension)")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow to the result")
	fs.Usage = usageFunc(c)
	return c
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	c := newRenderCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 1 || c.output == "" {
		return nil, &UsageError{of: c}
	}
	c.input = c.fs.Arg(0)
	if c.format != "" {
		if _, err := imageio.ParseFormat(c.format); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *renderCmd) Run() error {
	img, err := imageio.Load(c.input)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.input, err)
	}
	var opts []editor.Option
	if c.shadow {
		opts = append(opts, editor.WithShadow(compositor.DefaultShadowOptions()))
	}
	sess := c.newSession(opts...)
	sess.Load(img)

	if c.script != "" {
		sc, err := script.Load(c.script)
		if err != nil {
			return err
		}
		if err := sc.Run(sess, c.activeTheme); err != nil {
			return fmt.Errorf("%s: %w", c.script, err)
		}
	}
	if sess.Cropping() {
		sess.EndCrop()
	}

	if c.output == "-" {
		return c.writeStdout(sess)
	}
	if err := sess.SaveFormat(c.output, c.outputFormat()); err != nil {
		return err
	}
	status(l10n.F("Wrote %s", c.output))
	return nil
}

func (c *renderCmd) writeStdout(sess *editor.Session) error {
	if isTerminal(stdout) {
		return errors.New(l10n.T("Refusing to write image data to a terminal"))
	}
	img, err := sess.Render()
	if err != nil {
		return err
	}
	if c.shadow {
		img, _ = compositor.DropShadow(img, compositor.DefaultShadowOptions())
	}
	return imageio.Encode(stdout, img, c.outputFormat())
}

// outputFormat is -format, else the output extension, else Png.
func (c *renderCmd) outputFormat() imageio.Format {
	if f, err := imageio.ParseFormat(c.format); err == nil {
		return f
	}
	if f, err := imageio.FromPath(c.output); err == nil {
		return f
	}
	return imageio.Png
}
