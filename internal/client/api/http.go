package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 1 << 20
)

// HTTPClient talks to the REST API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request, including reading the response.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: http.DefaultTransport,
			Timeout:   defaultTimeout,
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.Transport = &tracingTransport{
		underlying: c.http.Transport,
		log:        c.log,
		newID:      newRequestID,
	}
	return c
}

// call describes one request. notFound, when set, is the message used for a
// failed response that carries no structured error.
type call struct {
	method   string
	path     string
	auth     authorizer
	body     any
	notFound string
}

type errorBody struct {
	Error string `json:"error"`
}

type successBody struct {
	Success string `json:"success"`
}

func do[T any](ctx context.Context, c *HTTPClient, cl call) Result[T] {
	var zero T

	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return fail[T](unexpected(fmt.Errorf("encode request: %w", err)))
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fail[T](unexpected(fmt.Errorf("build request: %w", err)))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.auth != nil {
		cl.auth.authorize(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail[T](unexpected(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classify(resp, cl.notFound)
		c.log.Debug(ctx, "api error response",
			"method", cl.method, "path", cl.path,
			"status", resp.StatusCode, "kind", apiErr.Kind.String())
		return fail[T](apiErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(&zero); err != nil {
		return fail[T](&Error{
			Kind:    KindUnexpected,
			Status:  resp.StatusCode,
			Message: GenericErrorMessage,
			Cause:   fmt.Errorf("decode response: %w", err),
		})
	}
	return ok(zero)
}

func classify(resp *http.Response, notFound string) *Error {
	e := &Error{Kind: KindUnexpected, Status: resp.StatusCode, Message: GenericErrorMessage}

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			e.Kind = KindServer
			e.Message = eb.Error
			return e
		}
		if notFound != "" {
			e.Kind = KindNotFound
			e.Message = notFound
			return e
		}
	}

	e.Cause = fmt.Errorf("unexpected status %d", resp.StatusCode)
	return e
}

func unwrapSuccess(r Result[successBody]) Result[string] {
	if r.Err != nil {
		return fail[string](r.Err)
	}
	return ok(r.Data.Success)
}
