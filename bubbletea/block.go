package bubbletea

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// MessageBlock is a renderable element in the conversation.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

var lastBlockID int64

// nextBlockID returns a process-unique block ID used to route timer ticks.
func nextBlockID() int {
	return int(atomic.AddInt64(&lastBlockID, 1))
}
