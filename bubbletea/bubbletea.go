// Package bubbletea provides a Bubble Tea TUI for the banter chat client.
package bubbletea

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits. Any request still in flight when the program exits is
// cancelled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	}
	return err
}

// ReplyMsg delivers the outcome of a chat call for the turn with TurnID.
type ReplyMsg struct {
	TurnID string
	Text   string
	Err    error
}

// RevealTickMsg advances the typing reveal of the bot block with ID. Gen
// identifies the reveal the tick was scheduled for; ticks from a cancelled
// reveal are dropped.
type RevealTickMsg struct {
	ID   int
	Gen  int
	Time time.Time
}

// ClipboardMsg reports the result of a copy to the clipboard.
type ClipboardMsg struct {
	Err error
}
