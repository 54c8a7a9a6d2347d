// Package notify turns editor and capture outcomes into desktop notices.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"

	"github.com/example/markshot/internal/config"
	_ "github.com/example/markshot/internal/i18n"
	"github.com/example/markshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture emits a notification when a capture completes.
	EventCapture Event = "capture"
	// EventSave emits a notification when an image is persisted to disk.
	EventSave Event = "save"
	// EventCopy emits a notification when data is copied to the clipboard.
	EventCopy Event = "copy"
	// EventError reports a failed save, copy or capture.
	EventError Event = "error"
)

// Preferences describes notification text. Templates take one %s.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification text in the active
// language.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "markshot",
		Templates: map[Event]string{
			EventCapture: l10n.T("Captured %s"),
			EventSave:    l10n.T("Saved %s"),
			EventCopy:    l10n.T("Copied %s to clipboard"),
			EventError:   "%s",
		},
	}
}

// LoadPreferences applies MARKSHOT_NOTIFY_* overrides read through getenv.
func LoadPreferences(getenv func(string) string) Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv("MARKSHOT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range map[string]Event{
		"MARKSHOT_NOTIFY_CAPTURE_TEXT": EventCapture,
		"MARKSHOT_NOTIFY_SAVE_TEXT":    EventSave,
		"MARKSHOT_NOTIFY_COPY_TEXT":    EventCopy,
	} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

var notifyFn = platform.Notify

// Notifier sends OS-level notifications for the enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// FromConfig creates a Notifier enabled per the rc [notify] section.
func FromConfig(c config.Notify, prefs Preferences) *Notifier {
	n := New(prefs)
	n.Enable(EventCapture, c.Capture)
	n.Enable(EventSave, c.Save)
	n.Enable(EventCopy, c.Copy)
	n.Enable(EventError, c.Error)
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Capture sends a capture notification with an optional image preview.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, n.prefs.Title, detail, opts)
}

// Save sends a save notification including the written filename.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, n.prefs.Title, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = l10n.T("image")
	}
	n.dispatch(EventCopy, n.prefs.Title, detail, platform.Options{})
}

// Error reports a failure under title, translated through the catalogue.
// Errors are always logged, even when the error notice is disabled.
func (n *Notifier) Error(title string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s: %v", title, err)
	if !n.enabledFor(EventError) {
		return
	}
	n.dispatch(EventError, l10n.T(title), err.Error(), platform.Options{Critical: true})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, title, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := notifyFn(title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "markshot-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
