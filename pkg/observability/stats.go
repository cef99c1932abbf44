package observability

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Stats counts events from all hook categories. It is safe for concurrent
// use and is what `cargo-info info --stats` registers.
type Stats struct {
	fetched     atomic.Int64
	failed      atomic.Int64
	requests    atomic.Int64
	httpErrors  atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	cacheBytes  atomic.Int64
	fetchNanos  atomic.Int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats { return &Stats{} }

func (s *Stats) OnFetchStart(context.Context, string) {}

func (s *Stats) OnFetchComplete(_ context.Context, _ string, _ int, _ bool, d time.Duration, err error) {
	if err != nil {
		s.failed.Add(1)
	} else {
		s.fetched.Add(1)
	}
	s.fetchNanos.Add(int64(d))
}

func (s *Stats) OnCacheHit(context.Context, string)  { s.cacheHits.Add(1) }
func (s *Stats) OnCacheMiss(context.Context, string) { s.cacheMisses.Add(1) }
func (s *Stats) OnCacheSet(_ context.Context, _ string, size int) {
	s.cacheBytes.Add(int64(size))
}

func (s *Stats) OnRequest(context.Context, string, string, string) { s.requests.Add(1) }
func (s *Stats) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (s *Stats) OnError(context.Context, string, string, string, error) { s.httpErrors.Add(1) }

// Snapshot is a point-in-time copy of [Stats].
type Snapshot struct {
	Fetched     int64
	Failed      int64
	Requests    int64
	HTTPErrors  int64
	CacheHits   int64
	CacheMisses int64
	CacheBytes  int64
	FetchTime   time.Duration // summed over crates, not wall time
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Fetched:     s.fetched.Load(),
		Failed:      s.failed.Load(),
		Requests:    s.requests.Load(),
		HTTPErrors:  s.httpErrors.Load(),
		CacheHits:   s.cacheHits.Load(),
		CacheMisses: s.cacheMisses.Load(),
		CacheBytes:  s.cacheBytes.Load(),
		FetchTime:   time.Duration(s.fetchNanos.Load()),
	}
}

// String renders the snapshot as a single line.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d fetched, %d failed · %d requests, %d errors · cache %d hit / %d miss",
		s.Fetched, s.Failed, s.Requests, s.HTTPErrors, s.CacheHits, s.CacheMisses)
}
