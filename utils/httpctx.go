package utils

import (
	"context"
	"net/http"
)

type httpCtxKey struct{}

// HTTPContext carries the raw request and response writer into resolvers so
// the session gate can read and set cookies.
type HTTPContext struct {
	Request *http.Request
	Writer  http.ResponseWriter
}

func WithHTTP(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	return context.WithValue(ctx, httpCtxKey{}, &HTTPContext{Request: r, Writer: w})
}

// HTTPFromContext returns nil when ctx did not come through the HTTP stack.
func HTTPFromContext(ctx context.Context) *HTTPContext {
	hc, _ := ctx.Value(httpCtxKey{}).(*HTTPContext)
	return hc
}
