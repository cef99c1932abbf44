package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenk/backoff"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/matzehuels/cargo-info/pkg/cache"
	"github.com/matzehuels/cargo-info/pkg/httputil"
	"github.com/matzehuels/cargo-info/pkg/observability"
)

// maxBodySize caps registry responses; crates with thousands of versions
// stay well below it.
const maxBodySize = 32 << 20

// Client provides shared HTTP functionality for registry API clients:
// response caching, retry with backoff, a circuit breaker over network
// failures, and default request headers.
//
// All methods are safe for concurrent use.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
	breaker   *circuit.Breaker
	logger    *log.Logger
	attempts  int
	delay     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetry overrides the retry policy (default 3 attempts, 1s initial delay).
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = httputil.NewClient(d) }
}

// NewClient creates a Client whose cache entries are stored under namespace
// and expire after ttl. Headers are applied to all requests; nil is allowed.
func NewClient(backend cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	c := &Client{
		http:      httputil.NewClient(DefaultTimeout),
		cache:     cache.Scoped(backend, namespace),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		breaker:   newBreaker(),
		logger:    log.Default(),
		attempts:  3,
		delay:     time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newBreaker trips after 5 consecutive network failures and stays open for
// an exponentially growing interval.
func newBreaker() *circuit.Breaker {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 30 * time.Second
	b.MaxInterval = 5 * time.Minute
	b.Multiplier = 2.0
	b.Reset()

	return circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    b,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})
}

// Cached returns the payload stored under key, or calls fetch and stores its
// result. If refresh is true the cache is bypassed for reading but still
// updated. The second return value reports whether the payload came from cache.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, fetch func() ([]byte, error)) ([]byte, bool, error) {
	if !refresh {
		data, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("cache read failed", "key", key, "err", err)
		}
		if ok {
			observability.Cache().OnCacheHit(ctx, c.namespace)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, c.namespace)
	}

	var data []byte
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		data, err = fetch()
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, c.namespace, len(data))
	}
	return data, false, nil
}

// Invalidate removes the cached payload stored under key, for payloads that
// turned out to be unusable. Failures are logged, not returned.
func (c *Client) Invalidate(ctx context.Context, key string) {
	if err := c.cache.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "err", err)
	}
}

// Get performs an HTTP GET request and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if !c.breaker.Ready() {
		return nil, fmt.Errorf("%w: circuit open", ErrUpstreamDown)
	}

	body, err := c.doRequest(ctx, url)
	if err != nil {
		if httputil.IsRetryable(err) {
			c.breaker.Fail()
		}
		return nil, err
	}
	c.breaker.Success()
	return body, nil
}

// GetJSON performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	c.logger.Debug("registry request",
		"url", url,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start).Round(time.Millisecond))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	return body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: ErrRateLimited}
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
