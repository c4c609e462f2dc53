package goldmark_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidebot"
	"github.com/fwojciec/sidebot/goldmark"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := sidebot.DefaultTheme()

	t.Run("blank input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", goldmark.Render("", 80, theme))
		assert.Equal(t, "", goldmark.Render(" \n ", 80, theme))
	})

	t.Run("paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "The average tip is 16.1%.", strings.TrimSpace(plain(goldmark.Render("The average tip is 16.1%.", 80, theme))))
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("one two three four five six seven eight nine ten", 12, theme))
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 12)
		}
		assert.Greater(t, strings.Count(out, "\n"), 2)
	})

	t.Run("heading is styled", func(t *testing.T) {
		t.Parallel()
		out := goldmark.Render("## Tips by day", 80, theme)
		assert.Contains(t, plain(out), "## Tips by day")
		assert.NotEqual(t, out, plain(out))
	})

	t.Run("emphasis keeps text", func(t *testing.T) {
		t.Parallel()
		out := goldmark.Render("**bold** and *italic* and ~~gone~~ and `code`", 80, theme)
		assert.Equal(t, "bold and italic and gone and code", strings.TrimSpace(plain(out)))
	})

	t.Run("code block is not reflowed", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("```sql\nSELECT day, avg(tip) FROM tips GROUP BY day\n```", 10, theme))
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "sql", lines[0])
		assert.Equal(t, "│ SELECT day, avg(tip) FROM tips GROUP BY day", lines[1])
	})

	t.Run("unordered list", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("- Sun\n- Sat", 80, theme))
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "• Sun", strings.TrimRight(lines[0], " "))
		assert.Equal(t, "• Sat", strings.TrimRight(lines[1], " "))
	})

	t.Run("ordered list honours start", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("3. three\n4. four", 80, theme))
		assert.Contains(t, out, "3. three")
		assert.Contains(t, out, "4. four")
	})

	t.Run("nested list is indented", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("- days\n  - Sun\n  - Sat", 80, theme))
		assert.Contains(t, out, "  • Sun")
	})

	t.Run("list continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("- alpha beta gamma delta epsilon zeta eta theta", 20, theme))
		lines := strings.Split(out, "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[1], "  "), lines[1])
	})

	t.Run("blockquote", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("> quoted", 80, theme))
		assert.True(t, strings.HasPrefix(out, "│ quoted"), out)
	})

	t.Run("link shows destination", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("[docs](https://example.com)", 80, theme))
		assert.Contains(t, out, "docs (https://example.com)")
	})

	t.Run("blocks are separated by a blank line", func(t *testing.T) {
		t.Parallel()
		out := plain(goldmark.Render("first\n\nsecond", 80, theme))
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "", strings.TrimSpace(lines[1]))
	})

	t.Run("non-positive width uses default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, goldmark.Render("hello", goldmark.DefaultWidth, theme), goldmark.Render("hello", 0, theme))
	})
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	src := "| day | avg |\n|:----|----:|\n| Sun | 16.0% |\n| Thur | 16.1% |"
	out := plain(goldmark.Render(src, 80, sidebot.DefaultTheme()))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "day  │   avg", lines[0])
	assert.Equal(t, "─────┼──────", lines[1])
	assert.Equal(t, "Sun  │ 16.0%", lines[2])
	assert.Equal(t, "Thur │ 16.1%", lines[3])
}

func TestRender_CodeHighlighting(t *testing.T) {
	t.Parallel()

	theme := sidebot.DefaultTheme()

	t.Run("known language is colored", func(t *testing.T) {
		t.Parallel()
		src := "```sql\nSELECT day FROM tips\nWHERE tip > 2\n```"
		out := goldmark.Render(src, 80, theme)
		lines := strings.Split(plain(out), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "│ SELECT day FROM tips", lines[1])
		assert.Equal(t, "│ WHERE tip > 2", lines[2])
		assert.Contains(t, out, "\x1b[38;5;")
	})

	t.Run("unknown language is left plain", func(t *testing.T) {
		t.Parallel()
		out := goldmark.Render("```nosuchlang\nSELECT 1\n```", 80, theme)
		assert.Contains(t, out, "SELECT 1")
		assert.NotContains(t, out, "\x1b[38;5;")
	})
}
