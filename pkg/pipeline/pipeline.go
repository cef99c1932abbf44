// Package pipeline fetches and normalizes crate records for reporting.
//
// A [Runner] takes the package names given on the command line, fetches
// each from the registry (through the response cache), and normalizes the
// response into a [report.Summary]. Fetches run concurrently up to
// [Options.Concurrency]; results come back in the order the names were given
// so output stays deterministic.
//
// A failure for one package never aborts the others: every [Result] carries
// its own error, classified with a code from pkg/errors.
//
//	runner := pipeline.NewRunner(client, logger)
//	results, err := runner.Run(ctx, pipeline.Options{Packages: []string{"serde", "tokio"}})
//	if err != nil {
//	    return err
//	}
//	for _, res := range results {
//	    if res.Err != nil {
//	        // report and continue
//	    }
//	}
package pipeline

import (
	"github.com/matzehuels/cargo-info/pkg/errors"
)

// DefaultConcurrency is the number of registry requests in flight at once.
// crates.io asks crawlers for one request per second; a handful of parallel
// interactive lookups stays well within its limits.
const DefaultConcurrency = 4

// Options configures a [Runner.Run] call.
type Options struct {
	Packages    []string // crate names, in output order
	Refresh     bool     // bypass the response cache
	Concurrency int      // max parallel fetches; <= 0 uses DefaultConcurrency
}

// ValidateAndSetDefaults checks that at least one package was requested and
// fills zero-valued fields.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Packages) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no packages given")
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	return nil
}
