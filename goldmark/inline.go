package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// inline renders the inline children of n as one styled string.
func (r *renderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(&b, c)
	}
	return b.String()
}

func (r *renderer) span(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			b.WriteString("\n")
		case n.SoftLineBreak():
			b.WriteString(" ")
		}

	case *ast.String:
		b.Write(n.Value)

	case *ast.Emphasis:
		if n.Level == 1 {
			b.WriteString(r.italic.Render(r.inline(n)))
		} else {
			b.WriteString(r.bold.Render(r.inline(n)))
		}

	case *east.Strikethrough:
		b.WriteString(r.strike.Render(r.inline(n)))

	case *ast.CodeSpan:
		b.WriteString(r.code.Render(r.inline(n)))

	case *ast.Link:
		b.WriteString(r.link.Render(r.inline(n)))
		b.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))

	case *ast.AutoLink:
		b.WriteString(r.link.Render(string(n.URL(r.src))))

	case *ast.Image:
		b.WriteString(r.muted.Render("[image: " + r.inline(n) + "]"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.src))
		}

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(b, c)
		}
	}
}
