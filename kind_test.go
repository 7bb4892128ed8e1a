package banter_test

import (
	"testing"

	"github.com/fwojciec/banter"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want banter.Kind
	}{
		{"", banter.KindText},
		{"plain words", banter.KindText},
		{"```go\nfmt.Println(1)\n```", banter.KindCode},
		{"```only opening fence", banter.KindText},
		{"https://go.dev", banter.KindLink},
		{"http://example.com/a_b", banter.KindLink},
		{"see https://go.dev", banter.KindText},
		{"**bold**", banter.KindMarkdown},
		{"# heading", banter.KindMarkdown},
		{"snake_case", banter.KindMarkdown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, banter.Classify(tt.text), "Classify(%q)", tt.text)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", banter.KindText.String())
	assert.Equal(t, "code", banter.KindCode.String())
	assert.Equal(t, "link", banter.KindLink.String())
	assert.Equal(t, "markdown", banter.KindMarkdown.String())
	assert.Equal(t, "unknown", banter.Kind(42).String())
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go\nfmt.Println(1)", banter.StripFences("```go\nfmt.Println(1)\n```"))
	assert.Equal(t, "x", banter.StripFences("```x```"))
	assert.Equal(t, "no fences", banter.StripFences("no fences"))
}
