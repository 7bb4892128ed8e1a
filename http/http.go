// Package http implements [banter.Client] for a chat service that accepts a
// single JSON POST per user turn.
//
// The wire contract is one request/response pair: POST {base}/chat with
// {"text": "..."} and a JSON object reply whose optional "ai_response"
// field carries the answer.
package http

import "time"

const (
	defaultTimeout = 10 * time.Second
	chatPath       = "/chat"

	// maxResponseBytes caps how much of a reply body is read.
	maxResponseBytes = 4 << 20
)

// apiRequest is the JSON body sent to the chat endpoint.
type apiRequest struct {
	Text string `json:"text"`
}

// Reply fields. Both are optional and decoded leniently: a field of the
// wrong type is treated as absent.
const (
	fieldResponse = "ai_response"
	fieldError    = "error"
)
