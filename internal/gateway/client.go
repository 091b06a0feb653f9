// Package gateway is the abstraction boundary through which all backend
// calls are made. One method per operation, JSON in and out, no retry and no
// backoff: a failed call surfaces once with its human-readable message and
// leaves prior state untouched.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// apiError is the backend's error body shape.
type apiError struct {
	Message string `json:"message"`
}

// Error is a failed gateway call carrying the backend's message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the hospital backend REST API.
type Client struct {
	baseURL    *url.URL
	authToken  string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a gateway client for the given base URL.
func New(baseURL, authToken string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    u,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// doJSON issues one request. The context is the caller's cancellation
// boundary: callers dropping the session abort the call here instead of
// committing a stale result later.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-ID", id.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("gateway request failed")
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var ae apiError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil {
			apiErr.Message = ae.Message
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("message", apiErr.Message).Msg("gateway call rejected")
		return apiErr
	}

	c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("gateway call ok")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
