// Package config loads the rc settings file and the two-line save record.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/markshot/internal/theme"
)

// DefaultHotkey triggers a capture from the tray.
const DefaultHotkey = "shift+d"

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
	Error   bool
}

// Hotkey holds global key bindings.
type Hotkey struct {
	Capture string
}

// Config holds the rc settings.
type Config struct {
	Theme  string
	Screen int    // 1-based; 0 picks the primary screen
	Delay  string // none, 3s, 5s or 10s
	Notify Notify
	Hotkey Hotkey
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Delay:  "none",
		Notify: Notify{Error: true},
		Hotkey: Hotkey{Capture: DefaultHotkey},
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides settings from MARKSHOT_* variables. Invalid values are
// reported and leave the setting unchanged.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("MARKSHOT_THEME"); v != "" {
		c.Theme = v
	}
	if v := getenv("MARKSHOT_DELAY"); v != "" {
		c.Delay = v
	}
	if v := getenv("MARKSHOT_HOTKEY"); v != "" {
		c.Hotkey.Capture = v
	}
	if v := getenv("MARKSHOT_SCREEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MARKSHOT_SCREEN: %w", err)
		}
		c.Screen = n
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Screen != 0 {
		fmt.Fprintf(&sb, "screen = %d\n", c.Screen)
	}
	if c.Delay != "" {
		fmt.Fprintf(&sb, "delay = %s\n", c.Delay)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "error = %v\n", c.Notify.Error)
	sb.WriteString("\n")

	sb.WriteString("[hotkey]\n")
	fmt.Fprintf(&sb, "capture = %s\n", c.Hotkey.Capture)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		c.Themes[name].WriteTo(&sb)
		sb.WriteString("\n")
	}
	return sb.String()
}
