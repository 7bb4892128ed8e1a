// Package goldmark renders markdown replies to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling.
package goldmark

import (
	"strings"

	"github.com/fwojciec/banter"
)

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width; code blocks
// keep their line structure. Source cut off inside a fenced code block, as
// happens midway through a typing reveal, is rendered as if the fence were
// closed.
func Render(source string, width int, theme banter.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	if strings.Count(source, "```")%2 == 1 {
		source += "\n```"
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
