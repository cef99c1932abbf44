// Package httputil provides HTTP plumbing shared by the registry clients.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff (cenk/backoff), but
// only for errors wrapped in [RetryableError] (connection failures, 5xx
// responses). Anything else, including 404s, is returned immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(ctx, url)
//	})
//
// # Transport
//
// [NewTransport] returns an [http.Transport] whose dialer resolves hosts
// through an in-process DNS cache. A report over many crates makes one
// request per crate to the same host; the cache keeps those from each paying
// for a lookup.
//
// DNS entries are refreshed every 5 minutes.
package httputil
