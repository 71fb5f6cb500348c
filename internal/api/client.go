// Package api performs one HTTP request per call against the remote HR API,
// with uniform bearer authorization and error normalization. It does not
// retry, cache, or dedupe.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"peopleops.org/internal/config"
	"peopleops.org/internal/ids"
	"peopleops.org/internal/obs"
	"peopleops.org/internal/session"
)

const maxResponseBytes = 8 << 20

// Client wraps outbound HTTP calls to the remote API.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Reader
	limiter  *rate.Limiter

	mu             sync.Mutex
	onUnauthorized func()
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests, custom transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUnauthorizedHook registers the cross-cutting reaction to a 401: clear
// the session and navigate back to sign-in. Fired at most once per request.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.mu.Lock()
		c.onUnauthorized = fn
		c.mu.Unlock()
	}
}

// New builds a client for the configured base URL reading tokens from store.
func New(cfg config.Config, store session.Reader, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout()},
		sessions: store,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs one request. body is JSON-encoded when non-nil; a 2xx response
// body is decoded into out when out is non-nil. Failures are always *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(normalizeRecord(raw), out); err != nil {
		return &Error{Kind: KindServerError, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

// List fetches a collection and normalizes its envelope into a record slice,
// preserving server order. envelopeKey names the wrapper field some resources
// use; a bare JSON array is accepted for all of them.
func List[T any](ctx context.Context, c *Client, path, envelopeKey string) ([]T, error) {
	raw, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[T](raw, envelopeKey)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindNetworkError, Message: err.Error()}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindNetworkError, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := ids.NewRequestID()
	req.Header.Set("X-Request-Id", requestID)
	if s, ok := c.sessions.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	done := obs.RequestStarted(method, path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		done(0, time.Since(start))
		c.logCall(method, path, requestID, 0, time.Since(start))
		return nil, &Error{Kind: KindNetworkError, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	done(resp.StatusCode, elapsed)
	c.logCall(method, path, requestID, resp.StatusCode, elapsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if readErr != nil {
			return nil, &Error{Kind: KindNetworkError, Message: readErr.Error()}
		}
		return data, nil
	}

	apiErr := &Error{
		Kind:    classify(resp.StatusCode),
		Status:  resp.StatusCode,
		Message: serverMessage(data),
	}
	if apiErr.Kind == KindUnauthorized {
		c.fireUnauthorized()
	}
	return nil, apiErr
}

func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	hook := c.onUnauthorized
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (c *Client) logCall(method, path, requestID string, status int, d time.Duration) {
	obs.LogRequest(map[string]any{
		"ts":          time.Now().UTC().Format(time.RFC3339Nano),
		"type":        "api_call",
		"method":      method,
		"path":        obs.CanonicalPath(path),
		"status":      status,
		"duration_ms": d.Milliseconds(),
		"request_id":  requestID,
	})
}

// serverMessage pulls the human-readable message out of an error body. The
// remote API is inconsistent here too: message, Message, or error.
func serverMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var envelope struct {
		Message      string `json:"message"`
		UpperMessage string `json:"Message"`
		Err          string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	switch {
	case envelope.Message != "":
		return envelope.Message
	case envelope.UpperMessage != "":
		return envelope.UpperMessage
	default:
		return envelope.Err
	}
}
