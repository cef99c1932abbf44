package crates

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/cargo-info/pkg/cache"
	"github.com/matzehuels/cargo-info/pkg/errors"
	"github.com/matzehuels/cargo-info/pkg/integrations"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// DefaultUserAgent identifies this tool, as crates.io policy requires.
const DefaultUserAgent = "cargo-info (https://github.com/matzehuels/cargo-info)"

// Client provides access to the crates.io package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// Config holds the settings for [NewClient]. Zero fields take defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	CacheTTL  time.Duration
}

// NewClient creates a crates.io client backed by the given cache.
func NewClient(backend cache.Cache, cfg Config, opts ...integrations.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	headers := map[string]string{"User-Agent": cfg.UserAgent}
	return &Client{
		Client:  integrations.NewClient(backend, "crates:", cfg.CacheTTL, headers, opts...),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// Result is a fetched crate: the raw JSON body as served by the registry and
// its decoded form.
type Result struct {
	Raw      json.RawMessage
	Response *Response
	Cached   bool
}

// FetchCrate retrieves metadata and the full version list for a crate.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - [integrations.ErrNotFound] if the crate doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - an [errors.ErrCodeMalformedRecord] error if the body does not decode
//     into [Response]; the returned Result still carries Raw, and the body is
//     evicted from the cache
func (c *Client) FetchCrate(ctx context.Context, name string, refresh bool) (*Result, error) {
	url := fmt.Sprintf("%s/crates/%s", c.baseURL, integrations.URLEncode(name))

	raw, cached, err := c.Cached(ctx, name, refresh, func() ([]byte, error) {
		return c.Get(ctx, url)
	})
	if err != nil {
		if stderrors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: crate %s", err, name)
		}
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.Invalidate(ctx, name)
		return &Result{Raw: raw, Cached: cached},
			errors.Wrap(errors.ErrCodeMalformedRecord, err, "crate %s: decode response", name)
	}
	return &Result{Raw: raw, Response: &resp, Cached: cached}, nil
}
