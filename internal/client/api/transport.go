package api

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader correlates a client request with server logs.
const RequestIDHeader = "X-Request-ID"

// tracingTransport stamps each request with a request id and logs the
// exchange. Credentials never reach the log.
type tracingTransport struct {
	underlying http.RoundTripper
	log        logging.Logger
	newID      func() string
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := t.newID()

	// RoundTrip must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(RequestIDHeader, id)

	start := time.Now()
	resp, err := t.underlying.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		t.log.Warn(req.Context(), "api request failed",
			"method", req.Method, "path", req.URL.Path, "request_id", id,
			"duration", elapsed, "error", err)
		return nil, err
	}

	t.log.Debug(req.Context(), "api request",
		"method", req.Method, "path", req.URL.Path, "request_id", id,
		"status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}

func newRequestID() string {
	return uuid.NewString()
}
