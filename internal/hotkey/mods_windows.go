//go:build windows

package hotkey

import "golang.design/x/hotkey"

var modifiers = map[string]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModAlt,
	ModSuper: hotkey.ModWin,
}
