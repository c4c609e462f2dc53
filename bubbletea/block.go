package bubbletea

import (
	"strings"

	"github.com/fwojciec/sidebot"
)

// Block is one rendered element of the chat pane. View takes a width so the
// root model controls layout and blocks are testable in isolation.
type Block interface {
	View(width int) string
}

// NewBlock returns the block for a transcript turn. Assistant turns that
// record a failed completion get an ErrorBlock. Text is stripped of escape
// sequences before rendering.
func NewBlock(turn sidebot.Turn, theme sidebot.Theme, styles Styles) Block {
	text := sanitize(turn.Text)
	switch {
	case turn.Speaker == sidebot.SpeakerUser:
		return NewUserBlock(text, styles)
	case strings.HasPrefix(text, sidebot.ErrorReplyPrefix):
		return NewErrorBlock(strings.TrimPrefix(text, sidebot.ErrorReplyPrefix), styles)
	default:
		return NewAssistantBlock(text, theme, styles)
	}
}
