// Package transport performs the outbound search request. It reports the HTTP
// status as-is; deciding what counts as a failed search is left to callers.
package transport

import (
	"context"
)

// Response is the outcome of a completed HTTP exchange
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 2xx
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport fetches a fully-formed request URL. A non-nil error means the
// exchange itself failed (unreachable host, timeout, cancellation); any HTTP
// status, including non-2xx, is returned as a Response.
type Transport interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// Func adapts a plain function to the Transport interface
type Func func(ctx context.Context, url string) (*Response, error)

// Get calls f
func (f Func) Get(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

type requestIDKey struct{}

// WithRequestID attaches a request id that HTTP sends as X-Request-ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx, if any
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
