package banter

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrEmptyInput indicates the submitted text was blank after trimming.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy indicates a turn is already awaiting a response.
	ErrBusy = errors.New("a response is already pending")

	// ErrNoPendingTurn indicates a reply arrived for a turn that is not pending.
	ErrNoPendingTurn = errors.New("no pending turn")

	// ErrUnreachable indicates the chat service could not be reached.
	ErrUnreachable = errors.New("chat service unreachable")

	// ErrTimeout indicates the client gave up waiting for the chat service.
	ErrTimeout = errors.New("request timed out")
)

// User-visible diagnostics, shown both inline and in the error banner.
const (
	UnreachableDiagnostic = "Unable to connect to the AI service. Please check if the backend server is running."
	TimeoutDiagnostic     = "Request timed out. Please try again."
	UnexpectedDiagnostic  = "An unexpected error occurred. Please try again."
)

// StatusError is returned when the chat service answers with a non-success
// HTTP status. Detail carries the service's own error text, if any.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Diagnose maps an error from a chat call to the message shown to the user.
// Timeouts are checked first because a deadline hit while dialing also
// looks like a connection failure.
func Diagnose(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrTimeout):
		return TimeoutDiagnostic
	case errors.Is(err, ErrUnreachable):
		return UnreachableDiagnostic
	case errors.As(err, &statusErr):
		msg := fmt.Sprintf("The AI service responded with status %d.", statusErr.Code)
		if statusErr.Detail != "" {
			msg += " (" + statusErr.Detail + ")"
		}
		return msg
	case err.Error() != "":
		return err.Error()
	default:
		return UnexpectedDiagnostic
	}
}
