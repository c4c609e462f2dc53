package bubbletea

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidebot"
	"github.com/mattn/go-runewidth"
)

const (
	dotRune     = '•'
	whiskerRune = '─'
	boxRune     = '█'
	medianRune  = '┃'
)

type cell struct {
	r      rune
	series int // -1 for axis and blank cells
}

// dayIndex assigns each day a series index in first-appearance order.
func dayIndex(days []string) (map[string]int, []string) {
	idx := make(map[string]int)
	var order []string
	for _, d := range days {
		if _, ok := idx[d]; !ok {
			idx[d] = len(order)
			order = append(order, d)
		}
	}
	return idx, order
}

// Scatter plots total bill against tip on a width x height character grid,
// one color per day, with axis labels and a legend on the last line. It
// returns "" when there is nothing to plot or no room to plot it.
func Scatter(points []sidebot.Point, width, height int, theme sidebot.Theme) string {
	if len(points) == 0 {
		return ""
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	days := make([]string, len(points))
	for i, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		days[i] = p.Day
	}

	top, bottom := fmt.Sprintf("%.0f", maxY), fmt.Sprintf("%.0f", minY)
	labelW := max(runewidth.StringWidth(top), runewidth.StringWidth(bottom))
	plotW := width - labelW - 1
	plotH := height - 3
	if plotW < 2 || plotH < 2 {
		return ""
	}

	grid := make([][]cell, plotH)
	for r := range grid {
		grid[r] = make([]cell, plotW)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' ', series: -1}
		}
	}
	idx, order := dayIndex(days)
	for _, p := range points {
		c := scale(p.X, minX, maxX, plotW)
		r := plotH - 1 - scale(p.Y, minY, maxY, plotH)
		grid[r][c] = cell{r: dotRune, series: idx[p.Day]}
	}

	styles := seriesStyles(theme, len(order))
	var b strings.Builder
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = top
		case plotH - 1:
			label = bottom
		}
		b.WriteString(runewidth.FillLeft(label, labelW))
		b.WriteString("│")
		for _, c := range row {
			if c.series < 0 {
				b.WriteRune(c.r)
				continue
			}
			b.WriteString(styles[c.series].Render(string(c.r)))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelW) + "└" + strings.Repeat("─", plotW) + "\n")

	left, right := fmt.Sprintf("%.0f", minX), fmt.Sprintf("%.0f", maxX)
	gap := plotW - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap > 0 {
		b.WriteString(strings.Repeat(" ", labelW+1) + left + strings.Repeat(" ", gap) + right + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(legend(order, styles, width))
	return b.String()
}

// BoxPlot draws one horizontal box per day: whiskers from min to max, a
// filled box from Q1 to Q3 and a bar at the median. The last line is the
// shared percent axis.
func BoxPlot(boxes []sidebot.DayBox, width int, theme sidebot.Theme) string {
	if len(boxes) == 0 {
		return ""
	}
	lo, hi := boxes[0].Min, boxes[0].Max
	labelW := 0
	for _, bx := range boxes {
		lo, hi = math.Min(lo, bx.Min), math.Max(hi, bx.Max)
		labelW = max(labelW, runewidth.StringWidth(bx.Day))
	}
	barW := width - labelW - 1
	if barW < 2 {
		return ""
	}

	styles := seriesStyles(theme, len(boxes))
	var b strings.Builder
	for i, bx := range boxes {
		bar := []rune(strings.Repeat(" ", barW))
		lo0, hi0 := scale(bx.Min, lo, hi, barW), scale(bx.Max, lo, hi, barW)
		for c := lo0; c <= hi0; c++ {
			bar[c] = whiskerRune
		}
		for c := scale(bx.Q1, lo, hi, barW); c <= scale(bx.Q3, lo, hi, barW); c++ {
			bar[c] = boxRune
		}
		bar[scale(bx.Median, lo, hi, barW)] = medianRune

		b.WriteString(runewidth.FillRight(bx.Day, labelW))
		b.WriteString(" ")
		b.WriteString(styles[i].Render(strings.TrimRight(string(bar), " ")))
		b.WriteString("\n")
	}

	left, right := percent(lo), percent(hi)
	gap := barW - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap > 0 {
		b.WriteString(strings.Repeat(" ", labelW+1) + left + strings.Repeat(" ", gap) + right)
	}
	return strings.TrimRight(b.String(), "\n")
}

// scale maps v in [lo, hi] onto a cell index in [0, n). A zero-width range
// maps to the middle.
func scale(v, lo, hi float64, n int) int {
	if hi <= lo {
		return n / 2
	}
	i := int(math.Round((v - lo) / (hi - lo) * float64(n-1)))
	return min(max(i, 0), n-1)
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func seriesStyles(theme sidebot.Theme, n int) []lipgloss.Style {
	out := make([]lipgloss.Style, n)
	for i := range out {
		out[i] = lipgloss.NewStyle().Foreground(ansiColor(theme.SeriesColor(i)))
	}
	return out
}

// legend lists the days with their colors, dropping entries that would not
// fit in width.
func legend(order []string, styles []lipgloss.Style, width int) string {
	var parts []string
	used := 0
	for i, day := range order {
		w := runewidth.StringWidth(day) + 2
		if len(parts) > 0 {
			w += 2
		}
		if used+w > width {
			break
		}
		used += w
		parts = append(parts, styles[i].Render(string(dotRune))+" "+day)
	}
	return strings.Join(parts, "  ")
}
