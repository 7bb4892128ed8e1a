package banter_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/banter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestNewConversation(t *testing.T) {
	t.Parallel()

	t.Run("seeds greeting", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.BotMessage(banter.DefaultGreeting, now))

		require.Len(t, c.History(), 1)
		assert.True(t, c.History()[0].Bot)
		assert.Equal(t, banter.StateIdle, c.State())
		assert.Empty(t, c.Err())
	})

	t.Run("empty greeting seeds nothing", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		assert.Empty(t, c.History())
		assert.Empty(t, c.Entries())
	})
}

func TestConversation_Submit(t *testing.T) {
	t.Parallel()

	t.Run("blank input is a no-op", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})

		for _, raw := range []string{"", "   ", "\n\t "} {
			_, err := c.Submit(raw, now)
			assert.ErrorIs(t, err, banter.ErrEmptyInput)
		}
		assert.Empty(t, c.Entries())
		assert.Equal(t, banter.StateIdle, c.State())
	})

	t.Run("accepted input adds user entry and placeholder", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})

		turn, err := c.Submit("  hello  ", now)
		require.NoError(t, err)

		assert.NotEmpty(t, turn.ID)
		assert.Equal(t, "hello", turn.User.Text)
		assert.Equal(t, banter.StateAwaitingResponse, c.State())

		entries := c.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "hello", entries[0].Text)
		assert.False(t, entries[0].Bot)
		assert.False(t, entries[0].Pending)
		assert.True(t, entries[1].Bot)
		assert.True(t, entries[1].Pending)
		assert.Empty(t, entries[1].Text)

		// Pending turns are not part of committed history.
		assert.Empty(t, c.History())
	})

	t.Run("second submit while pending is rejected", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		_, err := c.Submit("one", now)
		require.NoError(t, err)

		_, err = c.Submit("two", now)
		assert.ErrorIs(t, err, banter.ErrBusy)
		assert.Len(t, c.Entries(), 2)
	})

	t.Run("new submission clears the previous error", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		turn, err := c.Submit("x", now)
		require.NoError(t, err)
		_, err = c.Fail(turn.ID, banter.ErrTimeout, now)
		require.NoError(t, err)
		require.Equal(t, banter.TimeoutDiagnostic, c.Err())

		_, err = c.Submit("y", now)
		require.NoError(t, err)
		assert.Empty(t, c.Err())
	})
}

func TestConversation_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("commits user and bot messages", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		turn, err := c.Submit("hello", now)
		require.NoError(t, err)

		bot, err := c.Resolve(turn.ID, "hi there", now.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, "hi there", bot.Text)
		assert.True(t, bot.Bot)

		history := c.History()
		require.Len(t, history, 2)
		assert.Equal(t, "hello", history[0].Text)
		assert.Equal(t, "hi there", history[1].Text)
		assert.Equal(t, banter.StateIdle, c.State())
		assert.Empty(t, c.Err())
		_, pending := c.Pending()
		assert.False(t, pending)
	})

	t.Run("empty reply becomes fallback", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		turn, err := c.Submit("ping", now)
		require.NoError(t, err)

		bot, err := c.Resolve(turn.ID, "", now)
		require.NoError(t, err)
		assert.Equal(t, banter.FallbackReply, bot.Text)
		assert.Equal(t, "Sorry, I couldn't process that request.", c.History()[1].Text)
	})

	t.Run("unknown turn is rejected", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		_, err := c.Resolve("nope", "hi", now)
		assert.ErrorIs(t, err, banter.ErrNoPendingTurn)

		_, err = c.Submit("hello", now)
		require.NoError(t, err)
		_, err = c.Resolve("stale", "hi", now)
		assert.ErrorIs(t, err, banter.ErrNoPendingTurn)
		assert.Equal(t, banter.StateAwaitingResponse, c.State())
	})
}

func TestConversation_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unreachable", fmt.Errorf("post: %w", banter.ErrUnreachable), banter.UnreachableDiagnostic},
		{"timeout", banter.ErrTimeout, banter.TimeoutDiagnostic},
		{"status", &banter.StatusError{Code: 503}, "The AI service responded with status 503."},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := banter.NewConversation(banter.Message{})
			turn, err := c.Submit("x", now)
			require.NoError(t, err)

			bot, err := c.Fail(turn.ID, tt.err, now)
			require.NoError(t, err)

			assert.Equal(t, tt.want, bot.Text)
			assert.Equal(t, tt.want, c.Err())
			history := c.History()
			require.Len(t, history, 2)
			assert.Equal(t, tt.want, history[1].Text)
			assert.Equal(t, banter.StateIdle, c.State())
		})
	}

	t.Run("without pending turn leaves error untouched", func(t *testing.T) {
		t.Parallel()
		c := banter.NewConversation(banter.Message{})
		_, err := c.Fail("nope", banter.ErrTimeout, now)
		assert.ErrorIs(t, err, banter.ErrNoPendingTurn)
		assert.Empty(t, c.Err())
	})
}

func TestConversation_EveryTurnYieldsExactlyOneReply(t *testing.T) {
	t.Parallel()

	c := banter.NewConversation(banter.BotMessage(banter.DefaultGreeting, now))
	outcomes := []func(id string) error{
		func(id string) error { _, err := c.Resolve(id, "ok", now); return err },
		func(id string) error { _, err := c.Resolve(id, "", now); return err },
		func(id string) error { _, err := c.Fail(id, banter.ErrTimeout, now); return err },
		func(id string) error { _, err := c.Fail(id, banter.ErrUnreachable, now); return err },
	}
	for i, settle := range outcomes {
		turn, err := c.Submit(fmt.Sprintf("turn %d", i), now)
		require.NoError(t, err)
		require.NoError(t, settle(turn.ID))
	}

	history := c.History()
	require.Len(t, history, 1+2*len(outcomes))
	for i := 1; i < len(history); i += 2 {
		assert.False(t, history[i].Bot)
		assert.True(t, history[i+1].Bot)
		assert.NotEmpty(t, history[i+1].Text)
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", banter.StateIdle.String())
	assert.Equal(t, "awaiting-response", banter.StateAwaitingResponse.String())
	assert.Equal(t, "unknown", banter.State(9).String())
}
