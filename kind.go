package banter

import "strings"

// Kind is the content shape of a message. It selects how a message is
// wrapped for display and has no effect on reveal timing.
type Kind int

const (
	KindText Kind = iota
	KindCode
	KindLink
	KindMarkdown
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	case KindLink:
		return "link"
	case KindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

const fence = "```"

// Classify returns the content shape of text. Rules are checked in order:
// fenced on both ends, URL prefix, markdown punctuation.
func Classify(text string) Kind {
	switch {
	case text == "":
		return KindText
	case strings.HasPrefix(text, fence) && strings.HasSuffix(text, fence):
		return KindCode
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		return KindLink
	case strings.ContainsAny(text, "*#_"):
		return KindMarkdown
	default:
		return KindText
	}
}

// StripFences removes every triple-backtick fence from text along with the
// blank lines they leave at either end.
func StripFences(text string) string {
	return strings.Trim(strings.ReplaceAll(text, fence, ""), "\n")
}
