package banter

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the submission state of a Conversation.
type State int

const (
	StateIdle             State = iota // No turn in flight; input accepted.
	StateAwaitingResponse              // A turn was sent and has not settled.
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting-response"
	default:
		return "unknown"
	}
}

// Turn is a user message whose reply has not arrived yet.
type Turn struct {
	ID   string
	User Message
}

// Conversation owns the committed history and at most one pending turn.
// History only grows: a turn is committed as a user/bot pair once it
// settles, so a placeholder never lands in history.
type Conversation struct {
	history []Message
	pending *Turn
	err     string
}

// NewConversation creates a conversation that opens with greeting. A
// greeting with empty text is not recorded.
func NewConversation(greeting Message) *Conversation {
	c := &Conversation{}
	if greeting.Text != "" {
		c.history = append(c.history, greeting)
	}
	return c
}

// State reports whether a turn is in flight.
func (c *Conversation) State() State {
	if c.pending != nil {
		return StateAwaitingResponse
	}
	return StateIdle
}

// Err returns the diagnostic of the last failed turn, or "" if the last
// submission has not failed.
func (c *Conversation) Err() string { return c.err }

// Pending returns the in-flight turn, if any.
func (c *Conversation) Pending() (Turn, bool) {
	if c.pending == nil {
		return Turn{}, false
	}
	return *c.pending, true
}

// History returns a copy of the committed messages.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

// Entries returns the rows to render: committed history followed, while a
// turn is in flight, by its user message and a pending placeholder.
func (c *Conversation) Entries() []Entry {
	entries := make([]Entry, 0, len(c.history)+2)
	for _, m := range c.history {
		entries = append(entries, Entry{Message: m})
	}
	if c.pending != nil {
		entries = append(entries,
			Entry{Message: c.pending.User},
			Entry{Message: Message{Bot: true, Timestamp: c.pending.User.Timestamp}, Pending: true},
		)
	}
	return entries
}

// Submit starts a turn with the trimmed raw text. It returns ErrEmptyInput
// for blank text and ErrBusy while another turn is pending; neither changes
// any state. A started turn clears the previous error.
func (c *Conversation) Submit(raw string, now time.Time) (Turn, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Turn{}, ErrEmptyInput
	}
	if c.pending != nil {
		return Turn{}, ErrBusy
	}
	c.pending = &Turn{ID: uuid.NewString(), User: UserMessage(text, now)}
	c.err = ""
	return *c.pending, nil
}

// Resolve settles the pending turn with the service's reply. An empty reply
// is replaced with FallbackReply. It returns the committed bot message.
func (c *Conversation) Resolve(id, reply string, now time.Time) (Message, error) {
	if reply == "" {
		reply = FallbackReply
	}
	return c.commit(id, BotMessage(reply, now))
}

// Fail settles the pending turn with the diagnostic for err and records it
// as the conversation's current error.
func (c *Conversation) Fail(id string, err error, now time.Time) (Message, error) {
	diag := Diagnose(err)
	if diag == "" {
		diag = UnexpectedDiagnostic
	}
	msg, cerr := c.commit(id, BotMessage(diag, now))
	if cerr != nil {
		return Message{}, cerr
	}
	c.err = diag
	return msg, nil
}

func (c *Conversation) commit(id string, bot Message) (Message, error) {
	if c.pending == nil || c.pending.ID != id {
		return Message{}, ErrNoPendingTurn
	}
	c.history = append(c.history, c.pending.User, bot)
	c.pending = nil
	return bot, nil
}
