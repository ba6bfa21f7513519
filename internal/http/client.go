// Package http implements the shared retrying HTTP client every resource
// client composes with. One logical call is a strictly sequential chain of
// attempts with bounded exponential backoff; network failures, non-2xx
// statuses, and undecodable response bodies are all retried until the
// attempt budget is spent.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
)

const defaultUserAgent = "connector-go"

// errorBodyLimit caps how much of an upstream error body is carried in
// error messages.
const errorBodyLimit = 512

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one logical call. It is built per call and never
// mutated by the client.
type Request struct {
	Method string
	// Template is a URL template; see FormatURL for the placeholder rules.
	Template string
	// Params supplies path substitutions for the template.
	Params map[string]string
	Query  url.Values
	// Headers override the computed defaults; an empty value drops a header.
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body interface{}
}

// Response is a fully-read upstream response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against the backend with bounded retries.
// All fields are set at construction and never mutated afterwards, so a
// single Client is safe for concurrent use; distinct calls are independent.
type Client struct {
	httpClient   *http.Client
	host         string
	token        string
	onPrem       bool
	timezone     string
	userAgent    string
	logger       Logger
	debug        bool
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryConfig sets the retry budget and backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithOnPrem selects plain http instead of https.
func WithOnPrem(onPrem bool) Option {
	return func(c *Client) {
		c.onPrem = onPrem
	}
}

// WithTimezone sets the default timezone header sent with every request.
func WithTimezone(timezone string) Option {
	return func(c *Client) {
		c.timezone = timezone
	}
}

// withSleep replaces the backoff sleep. Used by tests to observe delays.
func withSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// NewClient creates a client for the given backend host and bearer token.
// An empty token sends unauthenticated requests.
func NewClient(host, token string, opts ...Option) *Client {
	client := &Client{
		httpClient:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
		host:         host,
		token:        token,
		userAgent:    defaultUserAgent,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
		sleep:        sleepContext,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.retryMax < 1 {
		client.retryMax = 1
	}

	return client
}

// Do executes one logical call, retrying failed attempts until one succeeds
// or the budget is exhausted. On exhaustion the returned error is a
// *ioconnect.RetriesExhaustedError wrapping the last attempt's failure; the
// last response, when one was received, is returned alongside it.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.do(ctx, req, c.retryMax)
}

// DoOnce executes a single attempt with no retry. Used by the login flow.
func (c *Client) DoOnce(ctx context.Context, req *Request) (*Response, error) {
	target, body, err := c.compose(req)
	if err != nil {
		return nil, err
	}

	return c.dispatch(ctx, req, target, body)
}

func (c *Client) do(ctx context.Context, req *Request, attempts int) (*Response, error) {
	target, body, err := c.compose(req)
	if err != nil {
		return nil, err
	}

	var (
		lastErr    error
		lastResp   *Response
		lastStatus int
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.dispatch(ctx, req, target, body)
		if err == nil {
			return resp, nil
		}

		if ctx.Err() != nil {
			return resp, fmt.Errorf("request cancelled: %w", ctx.Err())
		}

		lastErr = err
		if resp != nil {
			lastResp = resp
			lastStatus = resp.StatusCode
		}

		if c.logger != nil {
			c.logger.Warn("request attempt failed", map[string]interface{}{
				"method":  req.Method,
				"url":     target,
				"attempt": attempt,
				"error":   err.Error(),
			})
		}

		if attempt == attempts {
			break
		}

		err = c.sleep(ctx, backoff(c.retryWaitMin, c.retryWaitMax, attempt))
		if err != nil {
			return lastResp, fmt.Errorf("request cancelled: %w", err)
		}
	}

	return lastResp, &ioconnect.RetriesExhaustedError{
		Method:     req.Method,
		URL:        target,
		Attempts:   attempts,
		LastStatus: lastStatus,
		Err:        lastErr,
	}
}

// compose resolves the URL and encodes the body once per logical call.
func (c *Client) compose(req *Request) (string, []byte, error) {
	target, err := FormatURL(req.Template, c.host, c.onPrem, req.Params)
	if err != nil {
		return "", nil, err
	}

	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body []byte

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return "", nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	return target, body, nil
}

// dispatch performs exactly one attempt. A non-2xx status or an undecodable
// body yields an error alongside the response so callers can retry.
func (c *Client) dispatch(ctx context.Context, req *Request, target string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, value := range c.requestHeaders(req.Headers, body != nil) {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    target,
		})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("dispatching request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"bytes":  len(data),
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return response, &ioconnect.StatusError{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Server:     resp.Header.Get("Server"),
			Body:       truncate(string(data)),
		}
	}

	if len(data) > 0 && !json.Valid(data) {
		return response, &ioconnect.DecodeError{URL: target, Err: ioconnect.ErrInvalidJSONBody}
	}

	return response, nil
}

// requestHeaders computes the final header set: bearer auth, JSON defaults,
// timezone, then caller overrides (caller wins; empty value drops).
func (c *Client) requestHeaders(extra map[string]string, hasBody bool) map[string]string {
	headers := BuildHeaders(c.token, nil)
	headers["Accept"] = "application/json"
	headers["User-Agent"] = c.userAgent

	if hasBody {
		headers["Content-Type"] = "application/json"
	}

	if c.timezone != "" {
		headers["X-Timezone"] = c.timezone
	}

	return mergeHeaders(headers, extra)
}

// Get executes a retrying GET.
func (c *Client) Get(ctx context.Context, template string, params map[string]string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Template: template, Params: params, Query: query})
}

// Post executes a retrying POST. Callers must only use this for requests the
// backend treats idempotently, since a timed-out attempt may have been
// applied before the retry fires.
func (c *Client) Post(ctx context.Context, template string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Template: template, Params: params, Body: body})
}

// Put executes a retrying PUT.
func (c *Client) Put(ctx context.Context, template string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Template: template, Params: params, Body: body})
}

// backoff returns the delay before attempt+1: waitMin doubled per attempt,
// capped at waitMax. With the platform defaults (2s base, 4s cap) the delay
// saturates on the second attempt.
func backoff(waitMin, waitMax time.Duration, attempt int) time.Duration {
	delay := waitMin << (attempt - 1)
	if delay <= 0 || delay > waitMax {
		delay = waitMax
	}

	return delay
}

// sleepContext blocks for d or until ctx is done, without blocking other
// in-flight calls.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string) string {
	if len(s) > errorBodyLimit {
		return s[:errorBodyLimit] + "..."
	}

	return s
}
