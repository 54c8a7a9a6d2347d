package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/example/markshot/internal/appstate"
	"github.com/example/markshot/internal/capture"
	"github.com/example/markshot/internal/config"
	"github.com/example/markshot/internal/hotkey"
	"github.com/example/markshot/internal/imageio"
	"github.com/example/markshot/internal/notify"
	"github.com/example/markshot/internal/theme"
	"github.com/example/markshot/internal/tray"
)

func testRoot(t *testing.T) *root {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return &root{
		fs:          flag.NewFlagSet("markshot", flag.ContinueOnError),
		program:     "markshot",
		ctx:         context.Background(),
		loader:      config.NewLoader("test", ""),
		config:      config.New(),
		record:      config.Record{SavePath: filepath.Join(home, "Pictures"), Format: imageio.Png},
		notifier:    notify.New(notify.DefaultPreferences()),
		activeTheme: theme.Default(),
	}
}

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	origOut, origErr := stdout, stderr
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = origOut, origErr })
	return &out, &errOut
}

type captureCall struct {
	index int
	delay capture.Delay
}

func stubCapture(t *testing.T, img *image.RGBA, err error) *[]captureCall {
	t.Helper()
	calls := &[]captureCall{}
	orig := captureFn
	captureFn = func(_ context.Context, index int, delay capture.Delay) (*image.RGBA, capture.Screen, error) {
		*calls = append(*calls, captureCall{index, delay})
		if err != nil {
			return nil, capture.Screen{}, err
		}
		return img, capture.Screen{Index: 2, Name: "HDMI-1", Rect: img.Bounds(), Primary: true}, nil
	}
	t.Cleanup(func() { captureFn = orig })
	return calls
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestCaptureWritesFile(t *testing.T) {
	r := testRoot(t)
	_, errOut := captureOutput(t)
	stubCapture(t, solid(4, 3, color.RGBA{10, 20, 30, 255}), nil)

	out := filepath.Join(t.TempDir(), "shot.png")
	cmd, err := parseCaptureCmd([]string{"-output", out}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := imageio.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	if !strings.Contains(errOut.String(), out) {
		t.Fatalf("status %q does not name %s", errOut.String(), out)
	}
}

func TestCaptureDefaultPath(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	stubCapture(t, solid(2, 2, color.RGBA{A: 255}), nil)
	at := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	orig := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = orig })

	cmd, err := parseCaptureCmd([]string{"-format", "jpeg"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := filepath.Join(r.record.SavePath, "screenshot_2024-03-09_14-05-06.jpg")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
}

func TestCaptureDelay(t *testing.T) {
	tests := []struct {
		name  string
		rc    string
		args  []string
		want  capture.Delay
		index int
	}{
		{"flag", "none", []string{"-delay", "3s", "-screen", "1"}, capture.DelayThree, 1},
		{"rc", "5s", nil, capture.DelayFive, 0},
		{"default", "", nil, capture.DelayNone, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := testRoot(t)
			r.config.Delay = tc.rc
			captureOutput(t)
			calls := stubCapture(t, solid(1, 1, color.RGBA{A: 255}), nil)
			cmd, err := parseCaptureCmd(append(tc.args, "-stdout"), r)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := cmd.Run(); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if len(*calls) != 1 || (*calls)[0] != (captureCall{tc.index, tc.want}) {
				t.Fatalf("calls = %+v", *calls)
			}
		})
	}
}

func TestCaptureBadDelay(t *testing.T) {
	r := testRoot(t)
	calls := stubCapture(t, solid(1, 1, color.RGBA{}), nil)
	cmd, err := parseCaptureCmd([]string{"-delay", "7s", "-stdout"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	}
	if len(*calls) != 0 {
		t.Fatalf("captured despite bad delay")
	}
}

func TestCaptureStdout(t *testing.T) {
	r := testRoot(t)
	out, _ := captureOutput(t)
	stubCapture(t, solid(5, 2, color.RGBA{200, 0, 0, 255}), nil)

	cmd, err := parseCaptureCmd([]string{"-stdout"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := imageio.Decode(out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{200, 0, 0, 255}) {
		t.Fatalf("pixel = %v", got)
	}
}

func TestCaptureRefusesTerminal(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	calls := stubCapture(t, solid(1, 1, color.RGBA{}), nil)
	orig := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = orig })

	cmd, err := parseCaptureCmd([]string{"-stdout"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	}
	if len(*calls) != 0 {
		t.Fatalf("captured before refusing")
	}
}

func TestCaptureClipboard(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	stubCapture(t, solid(3, 3, color.RGBA{A: 255}), nil)
	var copied image.Image
	orig := clipboardWriteFn
	clipboardWriteFn = func(img image.Image) error { copied = img; return nil }
	t.Cleanup(func() { clipboardWriteFn = orig })

	cmd, err := parseCaptureCmd([]string{"-clipboard"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if copied == nil || copied.Bounds().Dx() != 3 {
		t.Fatalf("clipboard got %v", copied)
	}
}

func TestCaptureError(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	sentinel := errors.New("boom")
	stubCapture(t, nil, sentinel)
	cmd, err := parseCaptureCmd([]string{"-stdout"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
}

func TestParseCaptureConflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"stdout and clipboard", []string{"-stdout", "-clipboard"}, "-stdout cannot be used"},
		{"output and stdout", []string{"-output", "a.png", "-stdout"}, "-output cannot be used"},
		{"bad format", []string{"-format", "tiff"}, "tiff"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCaptureCmd(tc.args, testRoot(t))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
	var uerr *UsageError
	if _, err := parseCaptureCmd([]string{"extra"}, testRoot(t)); !errors.As(err, &uerr) {
		t.Fatalf("operand: err = %v, want usage", err)
	}
}

func TestScreens(t *testing.T) {
	r := testRoot(t)
	out, _ := captureOutput(t)
	orig := screensFn
	screensFn = func() ([]capture.Screen, error) {
		return []capture.Screen{
			{Index: 1, Name: "eDP-1", Rect: image.Rect(0, 0, 1920, 1080)},
			{Index: 2, Name: "HDMI-1", Rect: image.Rect(1920, 0, 3200, 1024), Primary: true},
		}, nil
	}
	t.Cleanup(func() { screensFn = orig })

	cmd, err := parseScreensCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "1: eDP-1 1920x1080+0+0\n2: HDMI-1 1280x1024+1920+0 (primary)\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestScreensNone(t *testing.T) {
	r := testRoot(t)
	orig := screensFn
	screensFn = func() ([]capture.Screen, error) { return nil, capture.ErrNoScreens }
	t.Cleanup(func() { screensFn = orig })

	cmd, err := parseScreensCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, capture.ErrNoScreens) {
		t.Fatalf("err = %v", err)
	}
}

func writeImage(t *testing.T, dir string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, "in.png")
	if err := imageio.Save(path, img, imageio.Png); err != nil {
		t.Fatalf("save input: %v", err)
	}
	return path
}

func writeScript(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "session.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRenderCrop(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	dir := t.TempDir()
	in := writeImage(t, dir, solid(200, 100, color.RGBA{255, 255, 255, 255}))
	sc := writeScript(t, dir, `
expect: {width: 200, height: 100}
widget: {width: 100, height: 50}
steps:
  - crop: begin
  - drag: {from: [10, 5], to: [60, 30]}
  - crop: end
`)
	out := filepath.Join(dir, "out.png")
	cmd, err := parseRenderCmd([]string{"-script", sc, "-output", out, in}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := imageio.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("bounds = %v, want 100x50", b)
	}
}

func TestRenderDrawsAnnotation(t *testing.T) {
	r := testRoot(t)
	out, _ := captureOutput(t)
	dir := t.TempDir()
	white := color.RGBA{255, 255, 255, 255}
	in := writeImage(t, dir, solid(200, 100, white))
	sc := writeScript(t, dir, `
steps:
  - tool: rectangle
    color: blue
  - drag: {from: [20, 20], to: [120, 70], steps: 4}
`)
	cmd, err := parseRenderCmd([]string{"-script", sc, "-output", "-", "-format", "bmp", in}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img, err := bmp.Decode(out)
	if err != nil {
		t.Fatalf("decode bmp: %v", err)
	}
	rgba := imageio.ToRGBA(img)
	changed := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if rgba.RGBAAt(x, y) != white {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Fatalf("rectangle left no pixels")
	}
}

func TestParseRenderRequiresOutput(t *testing.T) {
	var uerr *UsageError
	if _, err := parseRenderCmd([]string{"in.png"}, testRoot(t)); !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want usage", err)
	}
}

func TestEditOpensFile(t *testing.T) {
	r := testRoot(t)
	in := writeImage(t, t.TempDir(), solid(30, 20, color.RGBA{A: 255}))
	var shown *appstate.AppState
	orig := runWindow
	runWindow = func(st *appstate.AppState) { shown = st }
	t.Cleanup(func() { runWindow = orig })

	cmd, err := parseEditCmd([]string{in}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if shown == nil || !shown.Session.HasImage() {
		t.Fatalf("window not shown with an image")
	}
	if shown.Title != "markshot - in.png" {
		t.Fatalf("title = %q", shown.Title)
	}
	if shown.Session.SaveDir() != r.record.SavePath {
		t.Fatalf("save dir = %q", shown.Session.SaveDir())
	}
}

func TestConfigRecord(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd, err := parseConfigCmd(args, r)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		if err := cmd.Run(); err != nil {
			t.Fatalf("run %v: %v", args, err)
		}
	}
	run("set-path", dir)
	run("set-format", "jpg")

	data, err := os.ReadFile(r.loader.RecordPath())
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if want := dir + "\nJpeg"; string(data) != want {
		t.Fatalf("record = %q, want %q", data, want)
	}
	rec, err := r.loader.LoadRecord()
	if err != nil || rec.SavePath != dir || rec.Format != imageio.Jpeg {
		t.Fatalf("LoadRecord = %+v, %v", rec, err)
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	r := testRoot(t)
	out, _ := captureOutput(t)
	for _, args := range [][]string{{"print"}, {"save"}} {
		cmd, err := parseConfigCmd(args, r)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		if err := cmd.Run(); err != nil {
			t.Fatalf("run %v: %v", args, err)
		}
	}
	for _, want := range []string{"[notify]", "[hotkey]", r.record.SavePath + "\nPng"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("print output missing %q:\n%s", want, out.String())
		}
	}
	if _, err := os.Stat(filepath.Join(config.Dir(), config.RCFile)); err != nil {
		t.Fatalf("rc not saved: %v", err)
	}
}

func TestConfigUnknown(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"frobnicate"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "frobnicate") {
		t.Fatalf("err = %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _ := captureOutput(t)
	cmd, err := parseVersionCmd(nil, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Fatalf("output %q lacks %q", out.String(), version)
	}
}

func TestHelpPages(t *testing.T) {
	r := testRoot(t)
	for _, name := range []string{"edit", "render", "capture", "screens", "tray", "config", "version"} {
		t.Run(name, func(t *testing.T) {
			h, ok := r.command(name)
			if !ok {
				t.Fatalf("no command %s", name)
			}
			help := (&UsageError{of: h}).Error()
			if want := "Usage: markshot " + name; !strings.HasPrefix(help, want) {
				t.Fatalf("help starts %q, want %q", help[:min(len(help), 40)], want)
			}
		})
	}
	t.Run("flags listed", func(t *testing.T) {
		h, _ := r.command("capture")
		help := (&UsageError{of: h}).Error()
		for _, f := range []string{"-screen", "-delay", "-clipboard", "-stdout"} {
			if !strings.Contains(help, f) {
				t.Errorf("capture help lacks %s", f)
			}
		}
	})
}

func TestHelpCommand(t *testing.T) {
	out, _ := captureOutput(t)
	r := testRoot(t)
	if err := r.Run([]string{"help", "tray"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Usage: markshot tray") {
		t.Fatalf("help = %q", out.String())
	}
}

func TestRootUsage(t *testing.T) {
	var uerr *UsageError
	for _, args := range [][]string{nil, {"bogus"}} {
		if err := testRoot(t).Run(args); !errors.As(err, &uerr) {
			t.Fatalf("Run(%v) = %v, want usage", args, err)
		}
	}
	if help := uerr.Error(); !strings.Contains(help, "Commands:") {
		t.Fatalf("root help = %q", help)
	}
}

func TestTrayCaptureAndSave(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	stubCapture(t, solid(6, 4, color.RGBA{A: 255}), nil)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := nowFn
	nowFn = func() time.Time { return at }
	t.Cleanup(func() { nowFn = orig })

	c := newTrayCmd(r)
	path, err := c.captureAndSave()
	if err != nil {
		t.Fatalf("captureAndSave: %v", err)
	}
	if want := filepath.Join(r.record.SavePath, "screenshot_2024-01-02_03-04-05.png"); path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestTrayTriggerDropsOverlapping(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	orig := captureFn
	captureFn = func(context.Context, int, capture.Delay) (*image.RGBA, capture.Screen, error) {
		calls.Add(1)
		close(started)
		<-release
		return nil, capture.Screen{}, context.Canceled
	}
	t.Cleanup(func() { captureFn = orig })

	c := newTrayCmd(r)
	c.trigger()
	<-started
	c.trigger()
	close(release)
	deadline := time.Now().Add(5 * time.Second)
	for c.busy.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("capture never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("captures = %d, want 1", got)
	}
}

func TestTrayRun(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	bound := make(chan hotkey.Binding, 1)
	origListen, origRun, origStop := hotkeyListenFn, trayRunFn, trayStopFn
	hotkeyListenFn = func(ctx context.Context, b hotkey.Binding, _ func()) error {
		bound <- b
		<-ctx.Done()
		return nil
	}
	var items []tray.Item
	trayRunFn = func(tr *tray.Tray) {
		items = tr.Items()
		tr.OnReady()
		<-bound
	}
	trayStopFn = func(*tray.Tray) {}
	t.Cleanup(func() { hotkeyListenFn, trayRunFn, trayStopFn = origListen, origRun, origStop })

	cmd, err := parseTrayCmd([]string{"-hotkey", "ctrl+shift+p"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(items) != 2 || !strings.Contains(items[0].Title, "ctrl+shift+p") {
		t.Fatalf("items = %+v", items)
	}
}

func TestTrayNoIcon(t *testing.T) {
	r := testRoot(t)
	captureOutput(t)
	origListen, origRun := hotkeyListenFn, hotkeyRunFn
	hotkeyListenFn = func(context.Context, hotkey.Binding, func()) error { return hotkey.ErrUnsupported }
	hotkeyRunFn = func(fn func()) { fn() }
	t.Cleanup(func() { hotkeyListenFn, hotkeyRunFn = origListen, origRun })

	cmd, err := parseTrayCmd([]string{"-no-icon"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, hotkey.ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
	if _, err := parseTrayCmd([]string{"-no-icon", "-hotkey", ""}, r); err == nil {
		t.Fatalf("expected error without a hotkey")
	}
	if _, err := parseTrayCmd([]string{"-hotkey", "ctrl+shift"}, r); err != nil {
		t.Fatalf("parse defers hotkey validation: %v", err)
	}
}
