package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ Block = (*ErrorBlock)(nil)

// ErrorBlock renders an assistant turn that records a failed completion.
type ErrorBlock struct {
	desc   string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock for the fault description desc.
func NewErrorBlock(desc string, styles Styles) *ErrorBlock {
	return &ErrorBlock{desc: desc, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	label := b.styles.Assistant.Render("Sidebot")
	body := lipgloss.NewStyle().Width(width).Render(b.styles.Error.Render("Error: " + b.desc))
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}
