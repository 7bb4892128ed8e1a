package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/banter"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message in full on a tinted background
// that spans the whole width, followed by its timestamp.
type UserMessageBlock struct {
	msg    banter.Message
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(msg banter.Message, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{msg: msg, styles: styles}
}

func (b *UserMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	body := b.styles.UserBg.Width(width).Render(b.msg.Text)
	return withClock(body, b.msg, b.styles)
}

// withClock appends the message timestamp line, if the message has one.
func withClock(body string, msg banter.Message, styles Styles) string {
	clock := msg.Clock()
	if clock == "" {
		return body
	}
	return body + "\n" + styles.Muted.Render(clock)
}
