package main

import (
	"flag"
	"fmt"

	"github.com/ideamans/go-l10n"
)

type versionCmd struct {
	*root
	fs *flag.FlagSet
}

func newVersionCmd(r *root) *versionCmd {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	c := &versionCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	return c
}

func parseVersionCmd(args []string, r *root) (*versionCmd, error) {
	c := newVersionCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *versionCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *versionCmd) Run() error {
	fmt.Fprintln(stdout, l10n.F("markshot version %s", version))
	if commit != "" {
		fmt.Fprintf(stdout, "commit %s %s\n", commit, date)
	}
	return nil
}
