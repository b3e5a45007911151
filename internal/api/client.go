package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/credential"
	"github.com/babysteps/babysteps/internal/errors"
	"github.com/babysteps/babysteps/internal/logger"
)

// StatusError is a non-auth failure reported by the server. The client never
// retries on its own; the user may retry the action manually.
type StatusError struct {
	StatusCode int
	Msg        string
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Msg)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client is the single gateway to the remote API. Every outgoing request
// carries the stored credential verbatim in the auth header; every
// unauthorized response forces a logout. The client never retries and never
// queues failed requests.
type Client struct {
	base  string
	http  *http.Client
	creds *credential.Store

	// onUnauthorized runs at most once per incident; it is re-armed when a
	// new session starts (ResetUnauthorized).
	onUnauthorized func()
	unauthorized   atomic.Bool
}

type Config struct {
	BaseURL        string
	Credentials    *credential.Store
	OnUnauthorized func()
	Timeout        time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:           strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: timeout},
		creds:          cfg.Credentials,
		onUnauthorized: cfg.OnUnauthorized,
	}
}

// SetUnauthorizedHook replaces the unauthorized callback. Used by the
// session controller, which is constructed after the client.
func (c *Client) SetUnauthorizedHook(hook func()) {
	c.onUnauthorized = hook
}

// ResetUnauthorized re-arms the one-shot unauthorized handling for a new
// session.
func (c *Client) ResetUnauthorized() {
	c.unauthorized.Store(false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(constants.RequestIDHeader, uuid.New().String())

	// Absence of the auth header implies an anonymous request
	if token, ok := c.creds.Token(); ok {
		req.Header.Set(constants.AuthHeader, token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		c.handleUnauthorized()
		return fmt.Errorf("%s %s: %w", method, path, errors.ErrUnauthorized)
	}

	if res.StatusCode >= 400 {
		return &StatusError{
			StatusCode: res.StatusCode,
			Msg:        decodeServerMsg(res.Body),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// handleUnauthorized is the gateway's only self-healing action: clear the
// credential and notify the session controller exactly once. The original
// request is not retried.
func (c *Client) handleUnauthorized() {
	if err := c.creds.Clear(); err != nil {
		logger.Warn("Failed to clear credential after unauthorized response", "error", err)
	}
	if c.unauthorized.CompareAndSwap(false, true) && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func decodeServerMsg(r io.Reader) string {
	var payload struct {
		Msg string `json:"msg"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Msg
}
