package main

import (
	"flag"
	"fmt"
)

type screensCmd struct {
	*root
	fs *flag.FlagSet
}

func newScreensCmd(r *root) *screensCmd {
	fs := flag.NewFlagSet("screens", flag.ExitOnError)
	c := &screensCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	return c
}

func parseScreensCmd(args []string, r *root) (*screensCmd, error) {
	c := newScreensCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *screensCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *screensCmd) Run() error {
	screens, err := screensFn()
	if err != nil {
		return err
	}
	for _, s := range screens {
		fmt.Fprintln(stdout, s.String())
	}
	return nil
}
