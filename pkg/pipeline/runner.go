package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cargo-info/pkg/errors"
	"github.com/matzehuels/cargo-info/pkg/integrations"
	"github.com/matzehuels/cargo-info/pkg/integrations/crates"
	"github.com/matzehuels/cargo-info/pkg/observability"
	"github.com/matzehuels/cargo-info/pkg/report"
)

// Fetcher retrieves one crate from the registry. *crates.Client implements it.
type Fetcher interface {
	FetchCrate(ctx context.Context, name string, refresh bool) (*crates.Result, error)
}

// Runner fetches crates and normalizes them into summaries.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Fetcher Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(f Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: f, Logger: logger}
}

// Result is the outcome for one requested package.
//
// Raw is set whenever the registry returned a body, even if the body could
// not be normalized, so raw output still works for malformed records.
type Result struct {
	Name    string
	Raw     json.RawMessage
	Summary *report.Summary
	Cached  bool
	Elapsed time.Duration
	Err     error
}

// Run fetches every package in opts.Packages. The returned slice is in the
// same order as opts.Packages. Only option validation errors are returned
// directly; per-package failures are reported in Result.Err.
func (r *Runner) Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	results := make([]Result, len(opts.Packages))
	var g errgroup.Group
	g.SetLimit(opts.Concurrency)

	for i, name := range opts.Packages {
		g.Go(func() error {
			results[i] = r.fetchOne(ctx, name, opts.Refresh)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (r *Runner) fetchOne(ctx context.Context, name string, refresh bool) (res Result) {
	res.Name = name
	hooks := observability.Fetch()
	hooks.OnFetchStart(ctx, name)
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		versions := 0
		if res.Summary != nil {
			versions = len(res.Summary.Versions())
		}
		hooks.OnFetchComplete(ctx, name, versions, res.Cached, res.Elapsed, res.Err)
	}()

	if err := errors.ValidatePackageName(name); err != nil {
		res.Err = err
		return res
	}

	fetched, err := r.Fetcher.FetchCrate(ctx, name, refresh)
	if fetched != nil {
		res.Raw = fetched.Raw
		res.Cached = fetched.Cached
	}
	if err != nil {
		res.Err = classify(name, err)
		return res
	}

	summary, err := report.NewSummary(fetched.Response)
	if err != nil {
		res.Err = err
		return res
	}
	res.Summary = summary

	r.Logger.Debug("fetched crate",
		"crate", name,
		"version", summary.LatestVersion(),
		"versions", len(summary.Versions()),
		"cached", fetched.Cached)
	return res
}

// classify maps transport errors onto error codes.
func classify(name string, err error) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, errors.ErrCodeMalformedRecord):
		return err
	case stderrors.Is(err, integrations.ErrNotFound):
		return errors.Wrap(errors.ErrCodePackageNotFound, err, "crate %s", name)
	case stderrors.Is(err, integrations.ErrRateLimited):
		return errors.Wrap(errors.ErrCodeRateLimited, err, "crate %s", name)
	case stderrors.Is(err, integrations.ErrUpstreamDown):
		return errors.Wrap(errors.ErrCodeUnavailable, err, "crate %s", name)
	case stderrors.Is(err, integrations.ErrNetwork):
		return errors.Wrap(errors.ErrCodeNetwork, err, "crate %s", name)
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "crate %s", name)
	}
}
