package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/fwojciec/banter"
	"github.com/rs/zerolog"
)

// Interface compliance check.
var _ banter.Client = (*Client)(nil)

// Client implements [banter.Client] over HTTP.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithTimeout sets how long a single call may take before it is aborted.
// Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] for the chat service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    defaultTimeout,
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Timeout returns the per-call deadline.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Send posts text to the chat endpoint and returns the reply text. A
// successful response without a usable "ai_response" string yields "".
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	reply, err := c.send(ctx, text)
	if err != nil {
		err = classify(ctx, err)
		c.logger.Warn().
			Err(err).
			Dur("elapsed", time.Since(start)).
			Msg("chat request failed")
		return "", fmt.Errorf("http: %w", err)
	}
	c.logger.Debug().
		Int("reply_len", len(reply)).
		Dur("elapsed", time.Since(start)).
		Msg("chat reply received")
	return reply, nil
}

func (c *Client) send(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(apiRequest{Text: text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("url", req.URL.String()).Int("text_len", len(text)).Msg("chat request sent")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &banter.StatusError{Code: resp.StatusCode, Detail: field(data, fieldError)}
	}
	if !json.Valid(data) {
		return "", fmt.Errorf("invalid JSON in response body (%d bytes)", len(data))
	}
	return field(data, fieldResponse), nil
}

// field returns the string value of key in a JSON object body. Anything
// else (not an object, key missing, non-string value) yields "".
func field(data []byte, key string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ""
	}
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// classify tags transport errors with the banter error class they belong to.
// The deadline is checked first: a dial aborted by the timeout is a timeout,
// not an unreachable service.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", banter.ErrTimeout, err)
	}
	if isUnreachable(err) {
		return fmt.Errorf("%w: %w", banter.ErrUnreachable, err)
	}
	return err
}

func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
