package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/example/markshot/internal/imageio"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func newConfigCmd(r *root) *configCmd {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	return c
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := newConfigCmd(r)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *configCmd) Run() error {
	args := c.fs.Args()
	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	case "set-path":
		if len(args) != 2 {
			return &UsageError{of: c}
		}
		return c.runSetPath(args[1])
	case "set-format":
		if len(args) != 2 {
			return &UsageError{of: c}
		}
		return c.runSetFormat(args[1])
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runPrint() error {
	rcPath := c.loader.GetConfigPath()
	if rcPath == "" {
		rcPath = "defaults"
	}
	fmt.Fprintf(stdout, "# %s\n%s", rcPath, c.config.String())
	fmt.Fprintf(stdout, "# %s\n", c.loader.RecordPath())
	if _, err := c.record.WriteTo(stdout); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	return nil
}

func (c *configCmd) runSave() error {
	if err := c.loader.Save(c.config); err != nil {
		return err
	}
	status(l10n.F("Config written to %s", c.loader.SavePath()))
	return nil
}

func (c *configCmd) runSetPath(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	rec := c.record
	rec.SavePath = abs
	if err := c.loader.SaveRecord(rec); err != nil {
		return err
	}
	c.record = rec
	status(l10n.F("Save path set to %s", abs))
	return nil
}

func (c *configCmd) runSetFormat(name string) error {
	f, err := imageio.ParseFormat(name)
	if err != nil {
		return err
	}
	rec := c.record
	rec.Format = f
	if err := c.loader.SaveRecord(rec); err != nil {
		return err
	}
	c.record = rec
	status(l10n.F("Format set to %s", f))
	return nil
}
