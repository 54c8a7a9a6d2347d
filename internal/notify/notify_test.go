package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markshot/internal/config"
	"github.com/example/markshot/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := notifyFn
	notifyFn = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { notifyFn = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("/tmp/x.png")
	n.Copy("")
	n.Capture("screen 1", nil)
	n.Error("Unable to save image", errors.New("disk full"))
	if len(*got) != 0 {
		t.Fatalf("sent %d notices, want 0", len(*got))
	}
}

func TestFromConfig(t *testing.T) {
	got := capture(t)
	n := FromConfig(config.Notify{Copy: true, Error: true}, DefaultPreferences())

	n.Save("/tmp/x.png")
	n.Copy("")
	n.Error("Unable to copy image", errors.New("no display"))

	if len(*got) != 2 {
		t.Fatalf("sent %d notices, want 2", len(*got))
	}
	if (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("copy body = %q", (*got)[0].body)
	}
	e := (*got)[1]
	if e.title != "Unable to copy image" || e.body != "no display" || !e.opts.Critical {
		t.Fatalf("error notice = %+v", e)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := capture(t)
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notices, want 1", len(*got))
	}
	if (*got)[0].opts.IconPath != path || !strings.HasSuffix((*got)[0].body, "shot.png") {
		t.Fatalf("notice = %+v", (*got)[0])
	}
}

func TestCapturePreviewIsRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture("screen 1", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notices, want 1", len(*got))
	}
	icon := (*got)[0].opts.IconPath
	if icon == "" {
		t.Fatalf("expected preview icon")
	}
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Fatalf("preview %s not removed: %v", icon, err)
	}
}

func TestLoadPreferences(t *testing.T) {
	env := map[string]string{
		"MARKSHOT_NOTIFY_TITLE":     "Shots",
		"MARKSHOT_NOTIFY_SAVE_TEXT": "Stored %s",
	}
	prefs := LoadPreferences(func(k string) string { return env[k] })
	if prefs.Title != "Shots" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if prefs.Templates[EventSave] != "Stored %s" {
		t.Fatalf("save template = %q", prefs.Templates[EventSave])
	}
	if prefs.Templates[EventCopy] != "Copied %s to clipboard" {
		t.Fatalf("copy template = %q", prefs.Templates[EventCopy])
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("x")
	n.Copy("x")
	n.Error("t", errors.New("e"))
}
