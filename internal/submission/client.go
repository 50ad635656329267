// Package submission sends accepted onboarding records to the configured
// endpoint and tracks the state of a form's submission.
package submission

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
	"strconv"
	"strings"

	"github.com/janisto/echo-onboarding/internal/onboarding"
	"github.com/janisto/echo-onboarding/internal/platform/logging"
	"github.com/janisto/echo-onboarding/internal/platform/middleware"
)

// Messages shown to the user for each outcome.
const (
	SuccessMessage      = "Form submitted successfully!"
	NetworkErrorMessage = "Network error: Please check your connection and try again."
)

// maxErrorBody caps how much of an error response is quoted in the message.
const maxErrorBody = 64 << 10

var (
	ErrMissingEndpoint = errors.New("submission endpoint is required")
	ErrInvalidEndpoint = errors.New("submission endpoint must be an absolute http(s) URL")
)

// Kind classifies an Outcome.
type Kind int

const (
	Success Kind = iota
	HTTPError
	NetworkError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case HTTPError:
		return "http_error"
	case NetworkError:
		return "network_error"
	}
	return "unknown"
}

// Outcome is the result of one submission attempt. StatusCode is zero for
// network errors. Record is set only on success.
type Outcome struct {
	Kind       Kind
	Message    string
	StatusCode int
	Record     *onboarding.Record
	Err        error
}

// Client POSTs records to a single endpoint. It never retries.
type Client struct {
	endpoint string
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient returns a Client for endpoint, which must be an absolute http or
// https URL.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}
	c := &Client{endpoint: u.String(), http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL records are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit sends rec as a JSON body in exactly one POST request. A request ID in
// ctx is forwarded as X-Request-ID.
func (c *Client) Submit(ctx context.Context, rec *onboarding.Record) Outcome {
	body, err := json.Marshal(rec)
	if err != nil {
		return networkError(fmt.Errorf("encode record: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return networkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderXRequestID, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.LogWarn(ctx, "submission request failed",
			slog.String("endpoint", c.endpoint),
			slog.Any("error", err),
		)
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return Outcome{Kind: Success, Message: SuccessMessage, StatusCode: resp.StatusCode, Record: rec}
	}

	msg := failureMessage(resp)
	logging.LogWarn(ctx, "submission rejected",
		slog.String("endpoint", c.endpoint),
		slog.Int("status", resp.StatusCode),
	)
	return Outcome{Kind: HTTPError, Message: msg, StatusCode: resp.StatusCode}
}

func networkError(err error) Outcome {
	return Outcome{Kind: NetworkError, Message: NetworkErrorMessage, Err: err}
}

// failureMessage renders "Submission failed: {status} {text}[ - {body}]".
func failureMessage(resp *http.Response) string {
	msg := fmt.Sprintf("Submission failed: %d %s", resp.StatusCode, statusText(resp))
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if text := strings.TrimSpace(string(b)); text != "" {
		msg += " - " + text
	}
	return msg
}

// statusText returns the reason phrase sent by the server, falling back to
// the canonical text for the code.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
