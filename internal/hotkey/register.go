//go:build (linux && cgo) || (darwin && cgo) || windows

package hotkey

import (
	"context"
	"fmt"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

var keys = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"SPACE": hotkey.KeySpace, "RETURN": hotkey.KeyReturn, "ESCAPE": hotkey.KeyEscape,
	"TAB": hotkey.KeyTab, "DELETE": hotkey.KeyDelete,
	"UP": hotkey.KeyUp, "DOWN": hotkey.KeyDown, "LEFT": hotkey.KeyLeft, "RIGHT": hotkey.KeyRight,
}

func listen(ctx context.Context, b Binding, fn func()) error {
	key, ok := keys[b.Key]
	if !ok {
		return fmt.Errorf("hotkey %s: unknown key", b)
	}
	mods := make([]hotkey.Modifier, 0, len(b.Mods))
	for _, m := range b.Mods {
		mod, ok := modifiers[m]
		if !ok {
			return fmt.Errorf("hotkey %s: modifier %s unavailable", b, m)
		}
		mods = append(mods, mod)
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", b, err)
	}
	defer hk.Unregister()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hk.Keydown():
			fn()
		}
	}
}

// Run runs fn while the main thread services hotkey events. Platforms that
// deliver key events only to the main thread need this.
func Run(fn func()) {
	mainthread.Init(fn)
}
