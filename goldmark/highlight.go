package goldmark

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const codeStyle = "monokai"

// highlight colors code in lang for a 256-color terminal. Code in an
// unknown language, or that fails to tokenize, is returned unchanged.
func highlight(code, lang string) string {
	if lang == "" {
		return code
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return code
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code
	}
	var b strings.Builder
	if err := formatters.Get("terminal256").Format(&b, styles.Get(codeStyle), it); err != nil {
		return code
	}
	return b.String()
}
