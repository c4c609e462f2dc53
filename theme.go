package sidebot

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg   int // User turn accent
	Assistant int // Assistant turn accent
	Error     int // Error messages
	Muted     int // Status bar, placeholders, axes
	Accent    int // Headings, value box titles
	Border    int // Card borders
	CodeBg    int // Code block background
	Series    []int
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Assistant: 2,
		Error:     1,
		Muted:     8,
		Accent:    5,
		Border:    8,
		CodeBg:    0,
		Series:    []int{4, 3, 2, 6, 5, 1},
	}
}

// SeriesColor returns the chart color for the i-th category, cycling
// through Series. It returns -1 (no color) when Series is empty.
func (t Theme) SeriesColor(i int) int {
	if len(t.Series) == 0 {
		return -1
	}
	return t.Series[i%len(t.Series)]
}
