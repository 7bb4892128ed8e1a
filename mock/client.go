// Package mock provides test doubles for banter interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/banter"
)

// Interface compliance check.
var _ banter.Client = (*Client)(nil)

// Client is a test double for banter.Client.
// Set SendFn before calling Send.
type Client struct {
	SendFn func(ctx context.Context, text string) (string, error)
}

// Send delegates to SendFn.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	return c.SendFn(ctx, text)
}

// Reply returns a Client that answers every turn with reply.
func Reply(reply string) *Client {
	return &Client{SendFn: func(context.Context, string) (string, error) {
		return reply, nil
	}}
}

// Fail returns a Client whose every call fails with err.
func Fail(err error) *Client {
	return &Client{SendFn: func(context.Context, string) (string, error) {
		return "", err
	}}
}

// Block returns a Client whose calls wait until their context is done and
// then return its error.
func Block() *Client {
	return &Client{SendFn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
}
