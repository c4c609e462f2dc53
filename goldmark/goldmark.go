// Package goldmark renders assistant replies, which are markdown, as styled
// terminal text.
package goldmark

import (
	"strings"

	"github.com/fwojciec/sidebot"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// DefaultWidth is used when Render is given a non-positive width.
const DefaultWidth = 80

var md = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// Render parses source and returns it styled with theme. Paragraphs, list
// items and quotes are wrapped to width; code blocks and tables are not
// reflowed.
func Render(source string, width int, theme sidebot.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	r := newRenderer(src, theme)
	var b strings.Builder
	r.blocks(&b, doc, width)
	return strings.TrimRight(b.String(), "\n")
}
