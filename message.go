// Package banter holds the domain types for a terminal chat client that posts
// each user turn to a remote chat endpoint and reveals the reply as if it
// were being typed.
package banter

import "time"

// TimeLayout is the clock format used when rendering message timestamps.
const TimeLayout = "3:04:05 PM"

// DefaultGreeting is the bot message that opens a new conversation.
const DefaultGreeting = "Hello! I'm your AI assistant. How can I help you today?"

// Message is one entry in the conversation. Messages are values and are
// never modified after they are committed to history.
type Message struct {
	Text      string
	Bot       bool
	Timestamp time.Time
}

// UserMessage returns a message authored by the user.
func UserMessage(text string, ts time.Time) Message {
	return Message{Text: text, Timestamp: ts}
}

// BotMessage returns a message authored by the assistant.
func BotMessage(text string, ts time.Time) Message {
	return Message{Text: text, Bot: true, Timestamp: ts}
}

// Clock formats the message timestamp for display.
func (m Message) Clock() string {
	if m.Timestamp.IsZero() {
		return ""
	}
	return m.Timestamp.Format(TimeLayout)
}

// Entry is a renderable row of the conversation. Pending marks the
// placeholder that stands in for the reply of the in-flight turn.
type Entry struct {
	Message
	Pending bool
}
