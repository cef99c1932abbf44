// Package crates provides an HTTP client for the crates.io API.
//
// [Client.FetchCrate] issues a single GET /api/v1/crates/{name}, which
// returns the crate record, every published version (newest first) and the
// crate's keyword objects. The raw body is returned next to the decoded
// [Response] so callers can pass it through verbatim.
//
//	client := crates.NewClient(cache.NewNullCache(), crates.Config{})
//	res, err := client.FetchCrate(ctx, "serde", false)
//
// The client sends a User-Agent header as requested by crates.io policy.
package crates
