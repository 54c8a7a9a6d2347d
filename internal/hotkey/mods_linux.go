//go:build linux && cgo

package hotkey

import "golang.design/x/hotkey"

// Mod1 is Alt and Mod4 is Super under the usual X11 modifier map.
var modifiers = map[string]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.Mod1,
	ModSuper: hotkey.Mod4,
}
