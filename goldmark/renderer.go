package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/banter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type ansiRenderer struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	link      lipgloss.Style
	code      lipgloss.Style
	codeBlock lipgloss.Style
}

func newRenderer(theme banter.Theme) *ansiRenderer {
	return &ansiRenderer{
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:      lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Underline(true),
		code:      lipgloss.NewStyle().Bold(true),
		codeBlock: lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c, source, width); s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// block renders one block-level node without a trailing newline. Blocks are
// joined with a blank line by the caller.
func (r *ansiRenderer) block(node ast.Node, source []byte, width int) string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(r.inline(n, source), width)

	case *ast.Heading:
		return wrap(r.heading.Render(r.inline(n, source)), width)

	case *ast.FencedCodeBlock:
		return r.codeLines(n.Lines(), string(n.Language(source)), source)

	case *ast.CodeBlock:
		return r.codeLines(n.Lines(), "", source)

	case *ast.List:
		var buf bytes.Buffer
		r.list(n, source, width, 0, &buf)
		return strings.TrimRight(buf.String(), "\n")

	case *ast.Blockquote:
		gutter := r.muted.Render("▎") + " "
		inner := r.children(n, source, width-2)
		lines := strings.Split(inner, "\n")
		for i, line := range lines {
			lines[i] = gutter + line
		}
		return strings.Join(lines, "\n")

	case *ast.ThematicBreak:
		return r.muted.Render(strings.Repeat("─", min(width, 40)))

	case *ast.HTMLBlock:
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		return strings.TrimRight(buf.String(), "\n")

	default:
		return r.children(node, source, width)
	}
}

func (r *ansiRenderer) children(node ast.Node, source []byte, width int) string {
	var parts []string
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c, source, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *ansiRenderer) codeLines(lines *text.Segments, lang string, source []byte) string {
	var out []string
	if lang != "" {
		out = append(out, r.muted.Render(lang))
	}
	gutter := r.muted.Render("│") + " "
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(source)), "\n")
		out = append(out, gutter+r.codeBlock.Render(line))
	}
	return strings.Join(out, "\n")
}

func (r *ansiRenderer) list(node *ast.List, source []byte, width, depth int, buf *bytes.Buffer) {
	n := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", n)
			n++
		}
		indent := strings.Repeat("  ", depth)

		var content strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if sub, ok := ic.(*ast.List); ok {
				if content.Len() > 0 {
					writeItem(buf, indent, marker, content.String(), width)
					content.Reset()
					marker = strings.Repeat(" ", len(marker))
				}
				r.list(sub, source, width, depth+1, buf)
				continue
			}
			if content.Len() > 0 {
				content.WriteString("\n")
			}
			switch ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				content.WriteString(r.inline(ic, source))
			default:
				content.WriteString(r.block(ic, source, width))
			}
		}
		if content.Len() > 0 {
			writeItem(buf, indent, marker, content.String(), width)
		}
	}
}

// writeItem writes a list item, indenting continuation lines under the
// first character after the marker.
func writeItem(buf *bytes.Buffer, indent, marker, content string, width int) {
	prefix := indent + marker
	wrapped := wrap(content, max(width-len(prefix), 10))
	pad := strings.Repeat(" ", len(prefix))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix)
		} else {
			buf.WriteString(pad)
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

func (r *ansiRenderer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, source, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) span(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.code.Render(r.inline(n, source)))

	case *ast.Link:
		buf.WriteString(r.link.Render(r.inline(n, source)))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.link.Render(string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(r.link.Render(r.inline(n, source)))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, source, buf)
		}
	}
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
