// Package integrations provides the HTTP layer for package registry clients.
//
// [Client] bundles what every registry client needs: default headers, a
// scoped response cache, retry with backoff for transient failures, a circuit
// breaker that fails fast once the registry is clearly down, and debug
// logging of every request with a per-request ID (also sent as X-Request-Id).
//
// Registry-specific clients live in subpackages:
//
//   - [crates]: Rust crates.io
//
// Errors are reported through sentinels so callers can branch with
// errors.Is: [ErrNotFound], [ErrNetwork], [ErrRateLimited], [ErrUpstreamDown].
//
// [crates]: github.com/matzehuels/cargo-info/pkg/integrations/crates
package integrations
