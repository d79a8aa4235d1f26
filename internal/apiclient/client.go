package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"event-storefront/internal/logging"
	"event-storefront/internal/models"

	"go.uber.org/zap"
)

// ErrNotFound is matched by APIError values carrying a 404 status
var ErrNotFound = errors.New("resource not found")

// APIError is a non-2xx answer from the events API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error: status=%d", e.StatusCode)
}

// Is lets callers match API errors against sentinel errors
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case models.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case models.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

// Message returns the user-facing text of err: the API message when present,
// otherwise the error text, otherwise fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, models.ErrAPIUnreachable) {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// envelope is the {message, data, meta} shape every endpoint answers with
type envelope[T any] struct {
	Message string           `json:"message"`
	Data    T                `json:"data"`
	Meta    *models.PageMeta `json:"meta,omitempty"`
}

// Client talks to the remote events API
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// New creates a client for baseURL with a per-request timeout
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// request describes one API call
type request struct {
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// do executes req and decodes the response envelope into out
func do[T any](ctx context.Context, c *Client, req request, out *envelope[T]) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, req.body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if id := logging.RequestID(ctx); id != "unknown" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", models.ErrAPIUnreachable, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
