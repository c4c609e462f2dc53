package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitize makes transcript text safe to place in the chat pane. Escape
// sequences and control bytes other than tab and newline are removed, CRLF
// becomes LF, and a lone CR rewinds to the start of its line the way a
// terminal would.
func sanitize(s string) string {
	s = strings.ReplaceAll(ansi.Strip(s), "\r\n", "\n")
	if !strings.ContainsFunc(s, isControl) {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = overwrite(line)
	}
	return strings.Join(lines, "\n")
}

func isControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' || r == 0x7f
}

// overwrite drops control runes from line and applies carriage returns.
func overwrite(line string) string {
	var buf []rune
	col := 0
	for _, r := range line {
		switch {
		case r == '\r':
			col = 0
		case isControl(r):
		default:
			if col < len(buf) {
				buf[col] = r
			} else {
				buf = append(buf, r)
			}
			col++
		}
	}
	return string(buf)
}
