package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ Block = (*UserBlock)(nil)

// UserBlock renders a user turn under a speaker label on a tinted
// background.
type UserBlock struct {
	text   string
	styles Styles
}

// NewUserBlock creates a UserBlock.
func NewUserBlock(text string, styles Styles) *UserBlock {
	return &UserBlock{text: text, styles: styles}
}

func (b *UserBlock) View(width int) string {
	label := b.styles.UserMsg.Render("User")
	body := b.styles.UserBg.Width(width).Render(b.text)
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}
