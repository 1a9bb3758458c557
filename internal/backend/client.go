package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodySize bounds how much of a backend response is read.
const maxBodySize = 4 << 20

// ErrTimeout is returned when the backend does not answer within the client timeout.
var ErrTimeout = errors.New("request timed out")

// Error is a failure reported by the backend, either through an "error" member
// or a non-2xx status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Package is a bookable travel offer for a destination.
type Package struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookRequest is the body of POST /book.
type BookRequest struct {
	Plan     string `json:"plan"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
}

// Client talks to the booking backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Destinations returns the destinations offered by the backend.
func (c *Client) Destinations(ctx context.Context) ([]string, error) {
	var body struct {
		Destinations []string `json:"destinations"`
	}
	if err := c.do(ctx, http.MethodGet, "/destinations", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.Destinations, nil
}

// Packages returns the packages available for destination.
func (c *Client) Packages(ctx context.Context, destination string) ([]Package, error) {
	q := url.Values{}
	q.Set("destination", destination)

	var body struct {
		Packages []Package `json:"packages"`
	}
	if err := c.do(ctx, http.MethodGet, "/packages", q, nil, &body); err != nil {
		return nil, err
	}
	return body.Packages, nil
}

// Book submits a booking and returns the raw "result" member of the response.
func (c *Client) Book(ctx context.Context, req BookRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking: %w", err)
	}

	var body struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/book", nil, payload, &body); err != nil {
		return nil, err
	}
	return body.Result, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"error", err,
		)
		if isTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.logger.Debug("backend request completed",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var failure struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &failure) == nil && failure.Error != "" {
		return &Error{Status: resp.StatusCode, Message: failure.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
