package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/logging"
)

// Client is the orchestration-facing model client. It wraps a TextGenerator
// with a per-call deadline and bounded retry, and it never fails across the
// boundary: any transport, auth, or service error (including an expired
// deadline) is converted into a JSON error payload so downstream stages
// always receive some text to parse.
type Client struct {
	generator core.TextGenerator
	timeout   time.Duration
	retry     RetryPolicy
	logger    *logging.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryPolicy sets the retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = p
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a model client around a generator.
func NewClient(generator core.TextGenerator, opts ...ClientOption) *Client {
	c := &Client{
		generator: generator,
		timeout:   60 * time.Second,
		retry:     DefaultRetryPolicy(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends a prompt to the model and returns its text response. On
// failure it returns an error payload instead of an error, preserving the
// invariant that nothing downstream of the client ever has to handle a fault.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	var text string
	err := c.retry.Execute(ctx, func(ctx context.Context) error {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		out, err := c.generator.Generate(callCtx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		c.logger.Error("model call failed", "error", err)
		// Transport errors quote the request URL, API key included; the
		// payload ends up in analyses, the store, and API responses, so it
		// gets the same redaction as log output.
		return errorPayload(c.logger.Sanitize(err.Error()))
	}
	return text
}

// errorPayload encodes an error message as model-response-shaped JSON.
func errorPayload(message string) string {
	payload, mErr := json.Marshal(map[string]string{"error": message})
	if mErr != nil {
		return `{"error": "model invocation failed"}`
	}
	return string(payload)
}

// compile-time check that the raw port stays compatible
var _ core.TextGenerator = (*Gemini)(nil)
