package editor

import (
	"fmt"
	"strings"

	"github.com/example/markshot/internal/annotate"
	"github.com/example/markshot/internal/scene"
)

// ToolKind is a tool offered by the toolbar.
type ToolKind int

const (
	ToolNone ToolKind = iota
	ToolRectangle
	ToolArrow
	ToolText
	ToolPen
	ToolHighlighter
)

// Text size limits of the toolbar slider.
const (
	MinTextSize     = 1
	MaxTextSize     = 25
	DefaultTextSize = 25
)

func (k ToolKind) String() string {
	switch k {
	case ToolRectangle:
		return "rectangle"
	case ToolArrow:
		return "arrow"
	case ToolText:
		return "text"
	case ToolPen:
		return "pen"
	case ToolHighlighter:
		return "highlighter"
	}
	return "none"
}

// ParseToolKind accepts the names returned by String.
func ParseToolKind(s string) (ToolKind, error) {
	for k := ToolNone; k <= ToolHighlighter; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}

// ToolChoice is the toolbar selection. Text and Size apply to ToolText.
type ToolChoice struct {
	Kind ToolKind
	Text string
	Size float32
}

// TextChoice returns a text tool with the size clamped to the slider range.
func TextChoice(text string, size float32) ToolChoice {
	return ToolChoice{Kind: ToolText, Text: text, Size: clampSize(size)}
}

func clampSize(s float32) float32 {
	if s == 0 {
		return DefaultTextSize
	}
	return min(max(s, MinTextSize), MaxTextSize)
}

// Spec converts the choice into an annotation tool drawn in c. ToolNone
// yields nil.
func (t ToolChoice) Spec(c scene.Color) annotate.Tool {
	switch t.Kind {
	case ToolRectangle:
		return annotate.RectangleTool{Color: c, Fill: annotate.Stroked(1)}
	case ToolArrow:
		return annotate.ArrowTool{Color: c, StrokeWidth: 1}
	case ToolText:
		return annotate.TextTool{Color: c, Content: t.Text, Size: clampSize(t.Size), Font: scene.DefaultFont}
	case ToolPen:
		return annotate.FreeHandTool{Color: c, StrokeWidth: 1}
	case ToolHighlighter:
		return annotate.FreeHandTool{Color: c.WithAlpha(0.5), StrokeWidth: 3}
	}
	return nil
}
