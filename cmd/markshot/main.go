package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/example/markshot/internal/capture"
	"github.com/example/markshot/internal/clipboard"
	"github.com/example/markshot/internal/config"
	"github.com/example/markshot/internal/editor"
	_ "github.com/example/markshot/internal/i18n"
	"github.com/example/markshot/internal/notify"
	"github.com/example/markshot/internal/scene"
	"github.com/example/markshot/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// Test seams.
var (
	captureFn        = capture.Capture
	screensFn        = capture.Screens
	clipboardWriteFn = clipboard.WriteImage
	nowFn            = time.Now
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	ctx         context.Context
	loader      *config.Loader
	config      *config.Config
	record      config.Record
	notifier    *notify.Notifier
	themeName   string
	activeTheme *theme.Theme

	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

// subcommand shares r's state under a longer program name for help pages.
func (r *root) subcommand(name string) *root {
	sub := *r
	sub.fs = nil
	sub.program = strings.TrimSpace(r.program + " " + name)
	return &sub
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		log.Printf("warning: failed to load config: %v", err)
		cfg = config.New()
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Printf("warning: %v", err)
	}
	rec, err := loader.LoadRecord()
	if err != nil {
		log.Printf("warning: %s: %v", loader.RecordPath(), err)
	}

	r := &root{
		fs:       flag.NewFlagSet("markshot", flag.ExitOnError),
		program:  "markshot",
		ctx:      context.Background(),
		loader:   loader,
		config:   cfg,
		record:   rec,
		notifier: notify.FromConfig(cfg.Notify, notify.LoadPreferences(os.Getenv)),
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a screen")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.themeName, "theme", "", "colour theme (dark, light, pastel or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadTheme resolves the theme with the precedence flag > env > rc.
func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	loader.Inline = r.config.Themes
	t, err := loader.Load(name)
	if err != nil {
		log.Printf("warning: failed to load theme %q: %v. using default.", name, err)
		return theme.Default()
	}
	return t
}

// command builds the named subcommand without parsing any arguments.
func (r *root) command(name string) (HelpData, bool) {
	sub := r.subcommand(name)
	switch name {
	case "edit":
		return newEditCmd(sub), true
	case "render":
		return newRenderCmd(sub), true
	case "capture":
		return newCaptureCmd(sub), true
	case "screens":
		return newScreensCmd(sub), true
	case "tray":
		return newTrayCmd(sub), true
	case "config":
		return newConfigCmd(sub), true
	case "version":
		return newVersionCmd(sub), true
	}
	return nil, false
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]
	sub := r.subcommand(cmdName)

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, sub)
	case "render":
		cmd, err = parseRenderCmd(subArgs, sub)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, sub)
	case "screens":
		cmd, err = parseScreensCmd(subArgs, sub)
	case "tray":
		cmd, err = parseTrayCmd(subArgs, sub)
	case "config":
		cmd, err = parseConfigCmd(subArgs, sub)
	case "version":
		cmd, err = parseVersionCmd(subArgs, sub)
	case "help":
		cmd, err = parseHelpCmd(subArgs, r)
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := newRoot()
	r.ctx = ctx
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprint(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, capture.ErrNoScreens):
			log.Fatalf("%s: %v", l10n.T("No screens"), err)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// newSession returns an editor session wired to the save record, theme,
// notifier and clipboard.
func (r *root) newSession(opts ...editor.Option) *editor.Session {
	th := r.activeTheme
	if th == nil {
		th = theme.Default()
	}
	base := []editor.Option{
		editor.WithSaveDir(r.record.SavePath),
		editor.WithFormat(r.record.Format),
		editor.WithColor(scene.FromColor(th.Swatch(theme.DefaultSwatch))),
		editor.WithNotifier(r.notifier),
		editor.WithClipboard(func(img image.Image) error { return clipboardWriteFn(img) }),
	}
	return editor.New(append(base, opts...)...)
}

// captureScreen waits for delay and grabs screen index, sending the capture
// notice. An empty delay uses the rc setting.
func (r *root) captureScreen(index int, delay string) (*image.RGBA, capture.Screen, error) {
	if delay == "" {
		delay = r.config.Delay
	}
	d, err := capture.ParseDelay(delay)
	if err != nil {
		return nil, capture.Screen{}, err
	}
	img, scr, err := captureFn(r.ctx, index, d)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.notifier.Error("Unable to capture screen", err)
		}
		return nil, capture.Screen{}, err
	}
	r.notifier.Capture(l10n.F("screen %d", scr.Index), img)
	return img, scr, nil
}

// status prints a human-facing line on stderr, green when it is a terminal.
func status(msg string) {
	if isTerminal(stderr) {
		fmt.Fprintf(stderr, "\x1b[32m%s\x1b[0m\n", msg)
		return
	}
	fmt.Fprintln(stderr, msg)
}
