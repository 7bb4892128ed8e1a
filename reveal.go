package banter

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Reveal timing. A reply is revealed one character per CharDelay, but the
// whole reveal never takes longer than MaxRevealDuration.
const (
	CharDelay         = 20 * time.Millisecond
	MaxRevealDuration = 2 * time.Second

	// MinRevealTick bounds how often a renderer needs to wake up. Long
	// replies reveal several characters per tick instead of one.
	MinRevealTick = 16 * time.Millisecond
)

// RevealDuration returns the total reveal time for n characters.
func RevealDuration(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	d := time.Duration(n) * CharDelay
	if d > MaxRevealDuration {
		return MaxRevealDuration
	}
	return d
}

// Reveal computes which prefix of a text is visible at a given moment of a
// typing animation that started at Start. Characters are grapheme clusters,
// so combining marks and emoji sequences are never split.
type Reveal struct {
	chars    []string
	start    time.Time
	interval time.Duration
}

// NewReveal starts a reveal of text at start.
func NewReveal(text string, start time.Time) Reveal {
	chars := graphemes(text)
	r := Reveal{chars: chars, start: start}
	if n := len(chars); n > 0 {
		r.interval = RevealDuration(n) / time.Duration(n)
	}
	return r
}

// Len returns the number of characters to reveal.
func (r Reveal) Len() int { return len(r.chars) }

// Start returns the moment the reveal began.
func (r Reveal) Start() time.Time { return r.start }

// Duration returns the total time the reveal takes.
func (r Reveal) Duration() time.Duration { return RevealDuration(len(r.chars)) }

// Tick returns how long a renderer should wait between frames.
func (r Reveal) Tick() time.Duration {
	if r.interval < MinRevealTick {
		return MinRevealTick
	}
	return r.interval
}

// Count returns how many characters are visible at t.
func (r Reveal) Count(t time.Time) int {
	n := len(r.chars)
	if n == 0 {
		return 0
	}
	elapsed := t.Sub(r.start)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= r.Duration():
		return n
	}
	c := int(elapsed / r.interval)
	if c > n {
		c = n
	}
	return c
}

// At returns the visible prefix at t.
func (r Reveal) At(t time.Time) string {
	return strings.Join(r.chars[:r.Count(t)], "")
}

// Done reports whether the full text is visible at t.
func (r Reveal) Done(t time.Time) bool {
	return r.Count(t) == len(r.chars)
}

// Text returns the full text being revealed.
func (r Reveal) Text() string {
	return strings.Join(r.chars, "")
}

func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
