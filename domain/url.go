package domain

import (
	"context"
	"net/url"

	"github.com/labstack/echo/v4"
)

// RequestPathKeyType is a custom type for the request path context key.
type RequestPathKeyType string

const (
	// RequestPathCtxKey is the key used to store the request path in the
	// request context for instrumentation.
	RequestPathCtxKey RequestPathKeyType = "request_path"
)

// ParseURLPath parses the URL path from the echo context.
func ParseURLPath(c echo.Context) (string, error) {
	parsedURL, err := url.Parse(c.Request().RequestURI)
	if err != nil {
		return "", err
	}

	return parsedURL.Path, nil
}

// GetURLPathFromContext returns the request path from the context.
func GetURLPathFromContext(ctx context.Context) string {
	requestPath, ok := ctx.Value(RequestPathCtxKey).(string)
	if !ok || len(requestPath) == 0 {
		requestPath = "unknown"
	}
	return requestPath
}
