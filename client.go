package banter

import "context"

// FallbackReply replaces a successful response that carried no usable text.
const FallbackReply = "Sorry, I couldn't process that request."

// Client sends one user turn to the chat service and returns the reply text.
// An empty reply with a nil error means the service answered without a
// usable response. Implementations apply their own timeout and report it as
// ErrTimeout; connection failures are reported as ErrUnreachable.
type Client interface {
	Send(ctx context.Context, text string) (string, error)
}
