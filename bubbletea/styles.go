package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidebot"
)

// Styles maps a Theme to lipgloss styles for the dashboard.
type Styles struct {
	UserMsg   lipgloss.Style
	Assistant lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Card      lipgloss.Style
	BoxTitle  lipgloss.Style
	BoxValue  lipgloss.Style
	UserBg    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t sidebot.Theme) Styles {
	return Styles{
		UserMsg:   lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Assistant: lipgloss.NewStyle().Foreground(ansiColor(t.Assistant)).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(t.Border)),
		BoxTitle: lipgloss.NewStyle().Foreground(ansiColor(t.Muted)),
		BoxValue: lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		UserBg:   lipgloss.NewStyle().Background(ansiColor(t.CodeBg)).PaddingLeft(1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
