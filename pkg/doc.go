// Package pkg provides the libraries behind cargo-info, a crates.io metadata
// reporter.
//
// # Overview
//
// cargo-info fetches a crate's registry record and prints a plain-text report:
// description, links, downloads, license, keywords, features and version
// history. The pkg directory is organized into these areas:
//
//  1. [report] - Rendering (summary normalization, timestamps, tables, reports)
//  2. [integrations] - Registry HTTP clients ([integrations/crates])
//  3. [pipeline] - Orchestration (validate, fetch and normalize, per crate)
//  4. [cache] - Response caches (file, Redis, none)
//  5. Support: [errors], [httputil], [observability], [buildinfo]
//
// # Architecture
//
// The data flow for one crate:
//
//	crates.io API (or cache)
//	         ↓
//	    [integrations/crates] (raw JSON + decoded response)
//	         ↓
//	    [report.NewSummary] (typed, normalized record)
//	         ↓
//	    [report.Composer] (summary, verbose, single-field or history output)
//	         ↓
//	    text on stdout
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cargo-info/pkg/cache"
//	    "github.com/matzehuels/cargo-info/pkg/integrations/crates"
//	    "github.com/matzehuels/cargo-info/pkg/pipeline"
//	    "github.com/matzehuels/cargo-info/pkg/report"
//	)
//
//	client := crates.NewClient(cache.NewNullCache(), crates.Config{})
//	results, err := pipeline.NewRunner(client, nil).Run(ctx, pipeline.Options{
//	    Packages: []string{"serde"},
//	})
//	if err != nil {
//	    return err
//	}
//	composer := report.NewComposer(report.NewClock(time.Now()))
//	for _, res := range results {
//	    if res.Err == nil {
//	        fmt.Println(composer.Compose(res.Summary, report.Full(false)))
//	    }
//	}
//
// Rendering is pure: given the same summary and clock, every [report] call
// returns the same string.
//
// [report]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/report
// [report.NewSummary]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/report#NewSummary
// [report.Composer]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/report#Composer
// [integrations]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/integrations
// [integrations/crates]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/integrations/crates
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cargo-info/pkg/buildinfo
package pkg
