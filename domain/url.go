package domain

import (
	"context"

	"github.com/labstack/echo/v4"
)

type ctxKey string

// RequestPathCtxKey is the key under which the middleware stores the
// matched request path in the request context.
const RequestPathCtxKey = ctxKey("request_path")

// ParseURLPath returns the matched route path for the given echo context.
func ParseURLPath(c echo.Context) (string, error) {
	path := c.Path()
	if path == "" {
		path = c.Request().URL.Path
	}
	return path, nil
}

// GetURLPathFromContext returns the request path stored in the context by the
// instrumentation middleware. Returns an empty string when not set, e.g. when
// the use case is invoked outside an HTTP request.
func GetURLPathFromContext(ctx context.Context) (string, error) {
	requestPath, ok := ctx.Value(RequestPathCtxKey).(string)
	if !ok {
		return "", nil
	}
	return requestPath, nil
}
