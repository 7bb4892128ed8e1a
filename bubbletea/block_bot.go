package bubbletea

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/banter"
	"github.com/fwojciec/banter/goldmark"
)

var _ MessageBlock = (*BotMessageBlock)(nil)

const cursor = "▌"

// BotMessageBlock renders a bot message. After Start it reveals the text
// progressively on a timer; otherwise it shows the full text.
type BotMessageBlock struct {
	id     int
	gen    int
	msg    banter.Message
	kind   banter.Kind
	reveal banter.Reveal
	shown  string
	typing bool
	theme  banter.Theme
	styles Styles
}

// NewBotMessageBlock creates a block showing msg in full.
func NewBotMessageBlock(msg banter.Message, theme banter.Theme, styles Styles) *BotMessageBlock {
	return &BotMessageBlock{
		id:     nextBlockID(),
		msg:    msg,
		kind:   banter.Classify(msg.Text),
		shown:  msg.Text,
		theme:  theme,
		styles: styles,
	}
}

// ID returns the block's tick routing ID.
func (b *BotMessageBlock) ID() int { return b.id }

// Message returns the message the block displays.
func (b *BotMessageBlock) Message() banter.Message { return b.msg }

// Shown returns the currently visible part of the text.
func (b *BotMessageBlock) Shown() string { return b.shown }

// Typing reports whether a reveal is in progress.
func (b *BotMessageBlock) Typing() bool { return b.typing }

// Start begins revealing the text from now and returns the first tick.
// It returns nil for an empty message.
func (b *BotMessageBlock) Start(now time.Time) tea.Cmd {
	b.gen++
	b.reveal = banter.NewReveal(b.msg.Text, now)
	if b.reveal.Len() == 0 {
		b.typing = false
		b.shown = b.msg.Text
		return nil
	}
	b.typing = true
	b.shown = ""
	return b.tick()
}

// SetMessage points the block at msg. A reveal in progress for a different
// text is cancelled and the new text is shown in full.
func (b *BotMessageBlock) SetMessage(msg banter.Message) {
	if msg.Text != b.msg.Text {
		b.gen++
		b.typing = false
	}
	b.msg = msg
	b.kind = banter.Classify(msg.Text)
	if !b.typing {
		b.shown = msg.Text
	}
}

func (b *BotMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	tick, ok := msg.(RevealTickMsg)
	if !ok || tick.ID != b.id || tick.Gen != b.gen || !b.typing {
		return b, nil
	}
	if b.reveal.Done(tick.Time) {
		b.typing = false
		b.shown = b.msg.Text
		return b, nil
	}
	b.shown = b.reveal.At(tick.Time)
	return b, b.tick()
}

func (b *BotMessageBlock) tick() tea.Cmd {
	id, gen := b.id, b.gen
	return tea.Tick(b.reveal.Tick(), func(t time.Time) tea.Msg {
		return RevealTickMsg{ID: id, Gen: gen, Time: t}
	})
}

func (b *BotMessageBlock) View(width int) string {
	if b.msg.Text == "" {
		return b.styles.Pending.Render(pulse.Frames[0])
	}
	return withClock(b.body(width), b.msg, b.styles)
}

func (b *BotMessageBlock) body(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	switch b.kind {
	case banter.KindCode:
		code := banter.StripFences(b.shown)
		if b.typing {
			code = strings.TrimRight(code, "`")
		}
		header := b.styles.Muted.Render("code · ctrl+y to copy")
		lines := strings.Split(code, "\n")
		for i, line := range lines {
			lines[i] = b.styles.CodeBg.Width(width).Render(line)
		}
		return header + "\n" + strings.Join(lines, "\n")

	case banter.KindLink:
		return wrap.Render(b.styles.Link.Render(b.shown))

	case banter.KindMarkdown:
		// Rendered lines are padded to width, so no cursor here.
		return goldmark.Render(b.shown, width, b.theme)

	default:
		text := b.styles.BotMsg.Render(b.shown)
		if b.typing {
			text += b.styles.BotMsg.Render(cursor)
		}
		return wrap.Render(text)
	}
}
