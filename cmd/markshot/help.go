package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

// HelpData is what a help template renders.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError renders the help page of the command it wraps.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc is installed as flag.FlagSet.Usage so -h prints the template.
func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: h}).Error())
	}
}

func (r *root) Template() string       { return "root.txt" }
func (c *editCmd) Template() string    { return "edit.txt" }
func (c *renderCmd) Template() string  { return "render.txt" }
func (c *captureCmd) Template() string { return "capture.txt" }
func (c *screensCmd) Template() string { return "screens.txt" }
func (c *trayCmd) Template() string    { return "tray.txt" }
func (c *configCmd) Template() string  { return "config.txt" }
func (c *versionCmd) Template() string { return "version.txt" }

// helpCmd prints the help page of a command without running it.
type helpCmd struct {
	*root
	fs   *flag.FlagSet
	name string
}

func parseHelpCmd(args []string, r *root) (*helpCmd, error) {
	fs := flag.NewFlagSet("help", flag.ExitOnError)
	c := &helpCmd{root: r, fs: fs}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.name = fs.Arg(0)
	return c, nil
}

func (c *helpCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *helpCmd) Template() string       { return "root.txt" }

func (c *helpCmd) Run() error {
	h, ok := c.root.command(c.name)
	if !ok {
		h = c.root
	}
	fmt.Fprint(stdout, (&UsageError{of: h}).Error())
	return nil
}
