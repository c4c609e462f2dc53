package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidebot"
	"github.com/fwojciec/sidebot/goldmark"
)

var _ Block = (*AssistantBlock)(nil)

// AssistantBlock renders an assistant reply as markdown. The rendering is
// cached per width since turns never change once recorded.
type AssistantBlock struct {
	text    string
	theme   sidebot.Theme
	styles  Styles
	byWidth map[int]string
}

// NewAssistantBlock creates an AssistantBlock.
func NewAssistantBlock(text string, theme sidebot.Theme, styles Styles) *AssistantBlock {
	return &AssistantBlock{
		text:    text,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	label := b.styles.Assistant.Render("Sidebot")
	out := lipgloss.JoinVertical(lipgloss.Left, label, goldmark.Render(b.text, width, b.theme))
	b.byWidth[width] = out
	return out
}
