// Package api is the client of the staff management REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/log"
)

// statusFailurePrefix starts the message of a non-2xx response that carried no
// error text of its own.
const statusFailurePrefix = "request failed with status"

// TokenSource supplies the bearer credential for protected calls.
// *session.Context implements it.
type TokenSource interface {
	Token() string
}

// Recorder receives one observation per request. *metrics.Metrics implements it.
type Recorder interface {
	RecordRequest(method, endpoint string, status int, duration time.Duration, err error)
}

// Client is the backend API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens    TokenSource
	logger    *log.Logger
	recorder  Recorder
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRecorder reports every request to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a new API client. tokens may be nil for a client that only
// performs public calls.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens:    tokens,
		userAgent: "staffdesk",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = log.OrDefault(c.logger).With("component", "api")
	return c
}

// request describes one call. Route is the path template used as the metrics
// label; Path is the concrete path.
type request struct {
	Method string
	Route  string
	Path   string
	Query  url.Values
	Body   interface{}
	// Public calls are sent without a bearer token.
	Public bool

	// Set by multipart uploads instead of Body.
	rawBody     io.Reader
	contentType string
}

// ErrorResponse represents an API error response. The backend is not consistent
// about the field name; JSON matching is case-insensitive so "Error" and "error"
// both land in Error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e ErrorResponse) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// do performs the request and decodes a 2xx body into target.
func (c *Client) do(ctx context.Context, r request, target interface{}) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		if c.recorder != nil {
			c.recorder.RecordRequest(r.Method, r.Route, status, time.Since(start), err)
		}
	}()

	token := ""
	if !r.Public {
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return errors.NewLoginRequiredError(r.Route)
		}
	}

	body := r.rawBody
	contentType := r.contentType
	if body == nil && r.Body != nil {
		data, merr := json.Marshal(r.Body)
		if merr != nil {
			return errors.Wrap(errors.ErrCodeAPIEncode, "failed to marshal request body", merr)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	u := c.BaseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	req, rerr := http.NewRequestWithContext(ctx, r.Method, u, body)
	if rerr != nil {
		return errors.Wrap(errors.ErrCodeAPIEncode, "failed to create request", rerr)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := c.logger.With("method", r.Method, "route", r.Route, "request_id", requestID)
	logger.DebugContext(ctx, "request")

	resp, derr := c.HTTPClient.Do(req)
	if derr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var netErr interface{ Timeout() bool }
		if stderrors.As(derr, &netErr) && netErr.Timeout() {
			return errors.Wrap(errors.ErrCodeNetworkTimeout, fmt.Sprintf("request to %s timed out", c.BaseURL), derr).
				WithSuggestion("Increase api.timeout in ~/.staffdesk/config.yaml")
		}
		return errors.NewNetworkError(c.BaseURL, derr)
	}
	status = resp.StatusCode
	logger.DebugContext(ctx, "response", "status", status, "duration", time.Since(start))

	return parseResponse(resp, !r.Public, target)
}

// parseResponse maps a response to the error taxonomy and decodes the body into target.
func parseResponse(resp *http.Response, protected bool, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		if protected && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return errors.NewSessionRejectedError(resp.StatusCode)
		}

		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.text() != "" {
			return errors.NewBackendError(resp.StatusCode, errResp.text())
		}

		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return errors.NewBackendError(resp.StatusCode, fmt.Sprintf("%s %d: %s", statusFailurePrefix, resp.StatusCode, msg))
	}

	if target == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIDecode, "failed to read response", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response", err)
	}
	return nil
}

// query builds url.Values from alternating keys and values.
func query(kv ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}
