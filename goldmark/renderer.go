package goldmark

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/sidebot"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

type renderer struct {
	src []byte

	bold    lipgloss.Style
	italic  lipgloss.Style
	strike  lipgloss.Style
	heading lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
}

func newRenderer(src []byte, theme sidebot.Theme) *renderer {
	return &renderer{
		src:     src,
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		strike:  lipgloss.NewStyle().Strikethrough(true),
		heading: lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true),
		code:    lipgloss.NewStyle().Foreground(color(theme.Accent)),
		muted:   lipgloss.NewStyle().Foreground(color(theme.Muted)),
		link:    lipgloss.NewStyle().Underline(true),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// blocks renders the children of n separated by blank lines.
func (r *renderer) blocks(b *strings.Builder, n ast.Node, width int) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(b, c, width)
		if c.NextSibling() != nil {
			b.WriteString("\n")
		}
	}
}

func (r *renderer) block(b *strings.Builder, n ast.Node, width int) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		b.WriteString(wrap(r.inline(n), width))
		b.WriteString("\n")

	case *ast.Heading:
		prefix := strings.Repeat("#", n.Level) + " "
		b.WriteString(wrap(r.heading.Render(prefix+r.inline(n)), width))
		b.WriteString("\n")

	case *ast.FencedCodeBlock:
		lang := string(n.Language(r.src))
		if lang != "" {
			b.WriteString(r.muted.Render(lang))
			b.WriteString("\n")
		}
		r.codeLines(b, n, lang)

	case *ast.CodeBlock:
		r.codeLines(b, n, "")

	case *ast.List:
		r.list(b, n, width, 0)

	case *ast.Blockquote:
		var inner strings.Builder
		r.blocks(&inner, n, width-2)
		bar := r.muted.Render("│") + " "
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			b.WriteString(bar + line + "\n")
		}

	case *ast.ThematicBreak:
		b.WriteString(r.muted.Render(strings.Repeat("─", min(width, 40))))
		b.WriteString("\n")

	case *east.Table:
		r.table(b, n)

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(r.src))
		}

	default:
		r.blocks(b, n, width)
	}
}

// codeLines writes a code block verbatim behind a gutter, highlighted when
// lang is recognized.
func (r *renderer) codeLines(b *strings.Builder, n ast.Node, lang string) {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(r.src))
	}
	text := strings.TrimRight(code.String(), "\n")
	if text == "" {
		return
	}

	gutter := r.muted.Render("│") + " "
	out := strings.Split(highlight(text, lang), "\n")
	// Lexers may append a newline; fold a trailing line with nothing visible
	// into the one before so its escape codes still apply.
	for len(out) > 1 && strings.TrimSpace(xansi.Strip(out[len(out)-1])) == "" {
		out[len(out)-2] += out[len(out)-1]
		out = out[:len(out)-1]
	}
	for _, line := range out {
		b.WriteString(gutter + line + "\n")
	}
}

func (r *renderer) list(b *strings.Builder, l *ast.List, width, depth int) {
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		indent := strings.Repeat("  ", depth)
		for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.List:
				r.list(b, in, width, depth+1)
			case *ast.Paragraph, *ast.TextBlock:
				item(b, indent+marker, r.inline(in), width)
				marker = strings.Repeat(" ", len([]rune(marker)))
			default:
				var inner strings.Builder
				r.block(&inner, in, width-len(indent)-len(marker))
				item(b, indent+marker, strings.TrimRight(inner.String(), "\n"), width)
				marker = strings.Repeat(" ", len([]rune(marker)))
			}
		}
	}
}

// item writes content after prefix, indenting continuation lines to line
// up with the first.
func item(b *strings.Builder, prefix, content string, width int) {
	pad := strings.Repeat(" ", lipgloss.Width(prefix))
	w := max(width-lipgloss.Width(prefix), 10)
	for i, line := range strings.Split(wrap(content, w), "\n") {
		if i == 0 {
			b.WriteString(prefix + line + "\n")
			continue
		}
		b.WriteString(pad + line + "\n")
	}
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
