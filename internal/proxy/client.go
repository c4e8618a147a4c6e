// Package proxy talks to the remote chat-completion proxy service.
//
// The service exposes three calls:
//
//	GET  {base}?prompt=…&model=…   single-turn, raw text reply
//	POST {base}                    multi-turn JSON body, raw text reply
//	POST {base}models              model catalog as JSON
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nexuchat/nexuchat/internal/schema"
)

const modelsPath = "models"

var (
	// ErrUnsuccessful is returned when the models payload carries success=false.
	ErrUnsuccessful = errors.New("models response reported failure")
	// ErrNoModels is returned when the models payload lists no models.
	ErrNoModels = errors.New("models response contained no models")
)

// Doer is the injected HTTP capability. *http.Client satisfies it.
// Timeouts, proxies and TLS are the Doer's business, not this package's.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPError reports a non-2xx reply from the service.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Client issues requests against whatever base URL the caller passes in.
// It holds no endpoint of its own so callers always use the latest value.
type Client struct {
	doer Doer
}

// NewClient wraps doer. A nil doer falls back to http.DefaultClient.
func NewClient(doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{doer: doer}
}

// Prompt sends a single-turn prompt. model is left out of the query when empty.
func (c *Client) Prompt(ctx context.Context, base, prompt, model string) (string, error) {
	target := base + "?prompt=" + encodeComponent(prompt)
	if model != "" {
		target += "&model=" + encodeComponent(model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	raw, err := c.send(req)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Chat sends the full conversation as a single POST and returns the raw reply.
func (c *Client) Chat(ctx context.Context, base string, body schema.ChatRequest) (string, error) {
	if body.Messages == nil {
		body.Messages = []schema.Turn{}
	}
	raw, err := c.postJSON(ctx, base, body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ListModels fetches the model catalog. A payload that is malformed, flagged
// unsuccessful, or empty is reported as an error.
func (c *Client) ListModels(ctx context.Context, base string) ([]schema.Model, error) {
	raw, err := c.postJSON(ctx, base+modelsPath, struct{}{})
	if err != nil {
		return nil, err
	}

	var payload schema.ModelsResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	if !payload.Success {
		return nil, ErrUnsuccessful
	}
	if len(payload.Models) == 0 {
		return nil, ErrNoModels
	}
	return payload.Models, nil
}

func (c *Client) postJSON(ctx context.Context, target string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req)
}

// send performs req and returns the body of a 2xx reply.
func (c *Client) send(req *http.Request) ([]byte, error) {
	slog.Debug("proxy: request", "method", req.Method, "url", req.URL.Redacted())

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// encodeComponent percent-encodes s for use as a query value, spaces as %20.
// QueryEscape already turns a literal '+' into %2B, so the replace is safe.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
