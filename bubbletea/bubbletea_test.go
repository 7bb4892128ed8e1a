package bubbletea_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/banter"
	bt "github.com/fwojciec/banter/bubbletea"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 14, 5, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newConversation() *banter.Conversation {
	return banter.NewConversation(banter.BotMessage(banter.DefaultGreeting, fixedNow))
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, client banter.Client) bt.Model {
	t.Helper()
	return initModelWith(t, client, newConversation(), bt.Config{Now: clock}, 80, 24)
}

// initModelWith creates a model with a custom conversation, config and size.
func initModelWith(t *testing.T, client banter.Client, conv *banter.Conversation, config bt.Config, width, height int) bt.Model {
	t.Helper()
	m := bt.New(client, conv, banter.DefaultTheme(), config)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// submit types text into the input and presses Enter.
func submit(t *testing.T, m bt.Model, text string) (bt.Model, tea.Cmd) {
	t.Helper()
	m.Input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// execCmd runs cmd, expanding batches, and delivers every resulting message
// to the returned channel. Commands run concurrently so a slow timer does not
// hold up the reply.
func execCmd(cmd tea.Cmd) <-chan tea.Msg {
	ch := make(chan tea.Msg, 64)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			ch <- msg
		}()
	}
	run(cmd)
	return ch
}

// waitReply waits for the ReplyMsg produced by a submit command.
func waitReply(t *testing.T, ch <-chan tea.Msg) bt.ReplyMsg {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-ch:
			if reply, ok := msg.(bt.ReplyMsg); ok {
				return reply
			}
		case <-deadline:
			t.Fatal("timed out waiting for ReplyMsg")
			return bt.ReplyMsg{}
		}
	}
}

// roundTrip submits text, runs the resulting call and delivers its reply.
func roundTrip(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	m, cmd := submit(t, m, text)
	require.NotNil(t, cmd)
	reply := waitReply(t, execCmd(cmd))
	return updateModel(t, m, reply)
}

// lastBot returns the last block, which must be a bot message block.
func lastBot(t *testing.T, m bt.Model) *bt.BotMessageBlock {
	t.Helper()
	blocks := m.Blocks()
	require.NotEmpty(t, blocks)
	b, ok := blocks[len(blocks)-1].(*bt.BotMessageBlock)
	require.True(t, ok, "last block is %T", blocks[len(blocks)-1])
	return b
}
