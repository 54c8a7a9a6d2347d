// Package hotkey binds the global capture shortcut.
package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupported is returned where global shortcuts cannot be registered.
	ErrUnsupported = errors.New("global hotkeys are not supported on this platform")
	errEmpty       = errors.New("empty hotkey")
)

// Modifier names in canonical order.
const (
	ModCtrl  = "ctrl"
	ModShift = "shift"
	ModAlt   = "alt"
	ModSuper = "super"
)

var modOrder = []string{ModCtrl, ModShift, ModAlt, ModSuper}

var modAliases = map[string]string{
	"ctrl": ModCtrl, "control": ModCtrl,
	"shift": ModShift,
	"alt": ModAlt, "option": ModAlt, "opt": ModAlt,
	"super": ModSuper, "win": ModSuper, "cmd": ModSuper, "command": ModSuper, "meta": ModSuper,
}

// Binding is a parsed shortcut such as "shift+d".
type Binding struct {
	Mods []string
	Key  string
}

// Parse reads a "+" separated shortcut. Modifiers may appear in any order;
// exactly one key is required.
func Parse(s string) (Binding, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	seen := make(map[string]bool)
	var b Binding
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return Binding{}, fmt.Errorf("hotkey %q: %w", s, errEmpty)
		}
		if m, ok := modAliases[p]; ok {
			seen[m] = true
			continue
		}
		if b.Key != "" {
			return Binding{}, fmt.Errorf("hotkey %q: more than one key", s)
		}
		k := strings.ToUpper(p)
		if !knownKey(k) {
			return Binding{}, fmt.Errorf("hotkey %q: unknown key %q", s, p)
		}
		b.Key = k
	}
	if b.Key == "" {
		return Binding{}, fmt.Errorf("hotkey %q: missing key", s)
	}
	for _, m := range modOrder {
		if seen[m] {
			b.Mods = append(b.Mods, m)
		}
	}
	return b, nil
}

func (b Binding) String() string {
	parts := append(append([]string(nil), b.Mods...), strings.ToLower(b.Key))
	return strings.Join(parts, "+")
}

var namedKeys = map[string]bool{
	"SPACE": true, "RETURN": true, "ESCAPE": true, "TAB": true, "DELETE": true,
	"UP": true, "DOWN": true, "LEFT": true, "RIGHT": true,
}

func knownKey(k string) bool {
	if len(k) == 1 && (k[0] >= 'A' && k[0] <= 'Z' || k[0] >= '0' && k[0] <= '9') {
		return true
	}
	if len(k) >= 2 && k[0] == 'F' {
		var n int
		if _, err := fmt.Sscanf(k[1:], "%d", &n); err == nil && n >= 1 && n <= 12 && fmt.Sprint(n) == k[1:] {
			return true
		}
	}
	return namedKeys[k]
}

// Listen registers b and calls fn on every press until ctx is done.
func Listen(ctx context.Context, b Binding, fn func()) error {
	return listen(ctx, b, fn)
}
