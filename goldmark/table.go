package goldmark

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	east "github.com/yuin/goldmark/extension/ast"
)

// table renders a GFM table with columns padded to their widest cell. The
// header row is bold and underlined by a rule.
func (r *renderer) table(b *strings.Builder, t *east.Table) {
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, r.inline(c))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(t.Alignments))
	for _, cells := range rows {
		for i, c := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}

	_, header := t.FirstChild().(*east.TableHeader)
	sep := r.muted.Render(" │ ")
	for n, cells := range rows {
		out := make([]string, len(widths))
		for i := range widths {
			var c string
			if i < len(cells) {
				c = cells[i]
			}
			if header && n == 0 {
				c = r.bold.Render(c)
			}
			out[i] = pad(c, widths[i], t.Alignments[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(out, sep), " ") + "\n")
		if n == 0 {
			rules := make([]string, len(widths))
			for i, w := range widths {
				rules[i] = strings.Repeat("─", w)
			}
			b.WriteString(r.muted.Render(strings.Join(rules, "─┼─")) + "\n")
		}
	}
}

func pad(s string, width int, align east.Alignment) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + s
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
