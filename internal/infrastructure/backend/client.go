// Package backend is the REST client for the externally owned booking API.
// All responses follow the envelope {success: bool, data?: T, error?: string};
// any non-2xx status or success:false is surfaced as an *Error carrying the
// backend's message (or a generic fallback).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/api/metrics"
)

const defaultTimeout = 15 * time.Second

// Error is a failure reported by the backend: either a transport-level
// non-2xx status or an envelope with success:false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.Status)
}

// Client talks to the booking backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New returns a Client rooted at baseURL (e.g. "http://localhost:5003/api/v1").
// A default timeout is applied when none is provided.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Token   string          `json:"token,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do executes one backend call and decodes the envelope. token may be empty
// for public endpoints. contentType is only set when body is non-nil.
func (c *Client) do(ctx context.Context, op, method, path, token string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.execute(op, req)
}

// execute sends a fully built request, records metrics and decodes the
// envelope.
func (c *Client) execute(op string, req *http.Request) (*envelope, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendErrorsTotal.WithLabelValues(op).Inc()
		c.logger.Error().Err(err).Str("operation", op).Msg("backend unreachable")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		metrics.BackendErrorsTotal.WithLabelValues(op).Inc()
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		metrics.BackendErrorsTotal.WithLabelValues(op).Inc()
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("operation", op).
			Str("error", env.Error).
			Msg("backend rejected request")
		return nil, &Error{Status: resp.StatusCode, Message: env.Error}
	}

	return &env, nil
}

// Ping reports whether the backend is reachable at all. Any HTTP response
// counts as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/massageshops", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	resp.Body.Close()
	return nil
}

// doJSON sends body as JSON (when non-nil) and unmarshals envelope.data into
// out (when non-nil).
func (c *Client) doJSON(ctx context.Context, op, method, path, token string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	env, err := c.do(ctx, op, method, path, token, reader, contentType)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: decode data: %w", op, err)
		}
	}
	return nil
}

// decodeData unmarshals envelope.data into out.
func decodeData(env *envelope, out any) error {
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func encodeJSON(body any) (io.Reader, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(payload), nil
}

// statusOf extracts the HTTP status from a backend error, or 0 when the
// failure was not an envelope rejection.
func statusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}
