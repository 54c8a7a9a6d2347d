package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/markshot/internal/editor"
)

type action int

const (
	actNone action = iota
	actTool
	actColor
	actBeginCrop
	actEndCrop
	actEscape
	actUndo
	actSave
	actCopy
	actQuit
	actTextRune
	actTextBackspace
	actTextDone
	actTextSize
)

// command is a decoded key press or toolbar click.
type command struct {
	act   action
	tool  editor.ToolKind
	color int
	r     rune
	delta float32
}

var toolKeys = map[rune]editor.ToolKind{
	'r': editor.ToolRectangle,
	'a': editor.ToolArrow,
	't': editor.ToolText,
	'p': editor.ToolPen,
	'h': editor.ToolHighlighter,
}

// commandForKey maps a key event. While editing is set, printable runes
// extend the text tool's content instead of selecting tools.
func commandForKey(e key.Event, editing bool) command {
	if e.Direction == key.DirRelease {
		return command{}
	}
	if e.Modifiers&key.ModControl != 0 {
		switch e.Code {
		case key.CodeZ:
			return command{act: actUndo}
		case key.CodeS:
			return command{act: actSave}
		case key.CodeC:
			return command{act: actCopy}
		}
		return command{}
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if editing {
			return command{act: actTextDone}
		}
		return command{act: actEndCrop}
	case key.CodeEscape:
		return command{act: actEscape}
	case key.CodeDeleteBackspace:
		if editing {
			return command{act: actTextBackspace}
		}
		return command{}
	}
	if editing {
		if e.Rune >= 0 && unicode.IsPrint(e.Rune) {
			return command{act: actTextRune, r: e.Rune}
		}
		return command{}
	}
	r := unicode.ToLower(e.Rune)
	if k, ok := toolKeys[r]; ok {
		return command{act: actTool, tool: k}
	}
	switch {
	case r >= '1' && r <= '8':
		return command{act: actColor, color: int(r - '1')}
	case r == 'c':
		return command{act: actBeginCrop}
	case r == 'q':
		return command{act: actQuit}
	case r == '+' || r == '=':
		return command{act: actTextSize, delta: 1}
	case r == '-':
		return command{act: actTextSize, delta: -1}
	}
	return command{}
}
