//go:build darwin && cgo

package hotkey

import "golang.design/x/hotkey"

var modifiers = map[string]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModOption,
	ModSuper: hotkey.ModCmd,
}
