package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserAgent = "User-Agent"

	DefaultUserAgent = "stock-predictor-client/1.0"
)

// ClientOptions holds options for creating a new Client
type ClientOptions struct {
	// Timeout of zero leaves the request bounded only by its context
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper
}

// NewClient creates an HTTP client that tags every request with a
// correlation id and user agent
func NewClient(opts ClientOptions) *http.Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &taggingTransport{
			base:      opts.Transport,
			userAgent: opts.UserAgent,
		},
	}
}

// RequestID returns the correlation id of req, if any
func RequestID(req *http.Request) string {
	return req.Header.Get(HeaderRequestID)
}

// WithRequestID sets a fresh correlation id on req unless it already has one
// and returns the id.
func WithRequestID(req *http.Request) string {
	if id := RequestID(req); id != "" {
		return id
	}
	id := uuid.New().String()
	req.Header.Set(HeaderRequestID, id)
	return id
}

type taggingTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *taggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	clone := req.Clone(req.Context())
	WithRequestID(clone)
	if clone.Header.Get(HeaderUserAgent) == "" {
		clone.Header.Set(HeaderUserAgent, t.userAgent)
	}
	return t.base.RoundTrip(clone)
}

// HTTPStatusError represents an error due to an unexpected HTTP status code
type HTTPStatusError struct {
	StatusCode int
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	return "unexpected status code: " + http.StatusText(e.StatusCode)
}

// IsSuccess reports whether code is in the 2xx range
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
