package integrations

import (
	"errors"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("rate limited by registry")

	// ErrUpstreamDown is returned while the circuit breaker is open after
	// repeated network failures.
	ErrUpstreamDown = errors.New("registry unavailable")
)

// URLEncode percent-encodes a path segment.
func URLEncode(s string) string { return url.PathEscape(s) }
