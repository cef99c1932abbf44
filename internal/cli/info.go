package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/cargo-info/pkg/cache"
	"github.com/matzehuels/cargo-info/pkg/errors"
	"github.com/matzehuels/cargo-info/pkg/integrations"
	"github.com/matzehuels/cargo-info/pkg/integrations/crates"
	"github.com/matzehuels/cargo-info/pkg/observability"
	"github.com/matzehuels/cargo-info/pkg/pipeline"
	"github.com/matzehuels/cargo-info/pkg/report"
)

// infoOpts holds the selection and transport flags of the info command.
type infoOpts struct {
	documentation bool
	downloads     bool
	homepage      bool
	repository    bool
	features      bool
	keywords      bool
	verbose       bool
	versions      int

	json    bool
	raw     bool
	pager   bool
	refresh bool
	noCache bool
	stats   bool

	registry string
	jobs     int
}

// selected reports whether any single-value selection flag was given.
func (o *infoOpts) selected() bool {
	return o.documentation || o.downloads || o.homepage || o.repository ||
		o.versions > 0 || o.features || o.keywords
}

// infoCommand creates the info command, the report driver.
func (c *CLI) infoCommand() *cobra.Command {
	opts := &infoOpts{}

	cmd := &cobra.Command{
		Use:   "info <crate>...",
		Short: "Print metadata for one or more crates",
		Long: `Fetch crates from the registry and print a report for each.

Without selection flags a summary is printed: description, links, downloads,
last update and the five most recent versions. With -v the summary becomes a
labeled listing including license, keywords and creation date.

Selection flags print only the requested values, in this order regardless of
how they are given: documentation, downloads, homepage, repository, versions,
features, keywords.`,
		Example: `  # Summary report
  cargo-info info serde

  # Repository URLs of several crates
  cargo-info info -r serde tokio rand

  # All versions with absolute release dates
  cargo-info info -VV -v serde

  # Raw registry response
  cargo-info info --json serde`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.documentation, "documentation", "d", false, "print the documentation URL")
	f.BoolVarP(&opts.downloads, "downloads", "D", false, "print the total download count")
	f.BoolVarP(&opts.homepage, "homepage", "H", false, "print the homepage URL")
	f.BoolVarP(&opts.repository, "repository", "r", false, "print the repository URL")
	f.BoolVarP(&opts.features, "features", "f", false, "print the features of the latest version")
	f.BoolVarP(&opts.keywords, "keywords", "k", false, "print the crate keywords")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "label values and show more detail")
	f.CountVarP(&opts.versions, "versions", "V", "print version history (-V recent, -VV all)")
	f.BoolVar(&opts.json, "json", false, "print the registry response as indented JSON")
	f.BoolVar(&opts.raw, "raw", false, "print the registry response as compact JSON")
	f.BoolVar(&opts.pager, "pager", false, "page the output when stdout is a terminal")
	f.BoolVar(&opts.refresh, "refresh", false, "bypass cached responses")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	f.BoolVar(&opts.stats, "stats", false, "print fetch statistics to stderr")
	f.StringVar(&opts.registry, "registry", "", "registry API base URL")
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel registry requests")
	cmd.MarkFlagsMutuallyExclusive("json", "raw")

	return cmd
}

// runInfo fetches every crate, renders the requested output and reports
// per-crate failures without stopping.
func (c *CLI) runInfo(cmd *cobra.Command, names []string, opts *infoOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(c.configPath, logger)
	if err != nil {
		return err
	}
	if opts.registry != "" {
		cfg.RegistryURL = opts.registry
	}
	if opts.jobs > 0 {
		cfg.Concurrency = opts.jobs
	}
	logger.Debug("config", "settings", cfg.String())

	backend, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		printWarning(stderr, "response cache disabled: %v", err)
		backend = cache.NewNullCache()
	}
	defer backend.Close()

	client := crates.NewClient(backend, crates.Config{
		BaseURL:   cfg.RegistryURL,
		UserAgent: cfg.UserAgent,
		CacheTTL:  cfg.CacheTTL.Duration,
	}, integrations.WithLogger(logger), integrations.WithTimeout(cfg.Timeout.Duration))

	var stats *observability.Stats
	if opts.stats {
		stats = observability.NewStats()
		observability.Register(stats)
		defer observability.Reset()
	}

	runner := pipeline.NewRunner(client, logger)
	prog := newProgress(logger)

	var spin *Spinner
	if isTerminal(stderr) && !c.debug {
		spin = newSpinner(ctx, stderr, fmt.Sprintf("Fetching %s", strings.Join(names, ", ")))
		spin.Start()
	}
	results, err := runner.Run(ctx, pipeline.Options{
		Packages:    names,
		Refresh:     opts.refresh,
		Concurrency: cfg.Concurrency,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Fetched %d crates", len(names)))

	composer := report.NewComposer(report.Clock{Now: c.clock(), Location: c.location()})

	var out bytes.Buffer
	failed := 0
	written := 0
	for _, res := range results {
		block, err := renderResult(composer, res, opts)
		if err != nil {
			failed++
			logger.Debug("crate failed", "crate", res.Name, "code", errors.GetCode(err), "err", err)
			printError(stderr, "%s", errors.UserMessage(err))
			continue
		}
		if written > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(block)
		out.WriteByte('\n')
		written++

		if opts.stats && res.Summary != nil {
			printFetchStats(stderr, res.Name, len(res.Summary.Versions()), res.Elapsed, res.Cached)
		}
	}

	if stats != nil {
		printInfo(stderr, "%s", stats.Snapshot())
	}

	if err := c.emit(cmd.OutOrStdout(), out.String(), opts.pager || cfg.Pager); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d crates failed", failed, len(results))
	}
	return nil
}

// renderResult produces the text block for one crate.
func renderResult(c *report.Composer, res pipeline.Result, opts *infoOpts) (string, error) {
	if opts.json || opts.raw {
		if res.Raw == nil {
			return "", res.Err
		}
		return formatJSON(res.Raw, opts.json)
	}
	if res.Err != nil {
		return "", res.Err
	}
	return composeSelected(c, res.Summary, opts), nil
}

// composeSelected renders the selected values in fixed flag order, or the
// full report when nothing is selected.
func composeSelected(c *report.Composer, s *report.Summary, opts *infoOpts) string {
	if !opts.selected() {
		return c.Compose(s, report.Full(opts.verbose))
	}

	var parts []string
	for _, sel := range []struct {
		on    bool
		field report.Field
	}{
		{opts.documentation, report.FieldDocumentation},
		{opts.downloads, report.FieldDownloads},
		{opts.homepage, report.FieldHomepage},
		{opts.repository, report.FieldRepository},
	} {
		if sel.on {
			parts = append(parts, c.Compose(s, report.SingleField(sel.field, opts.verbose)))
		}
	}
	if opts.versions > 0 {
		parts = append(parts, c.History(s, report.VersionLimit(opts.versions), opts.verbose))
	}
	if opts.features {
		parts = append(parts, c.Compose(s, report.FeatureList(opts.verbose)))
	}
	if opts.keywords {
		parts = append(parts, c.Compose(s, report.KeywordList()))
	}
	return strings.Join(parts, "\n")
}

// formatJSON re-encodes a registry body, indented when pretty is set and
// compacted otherwise.
func formatJSON(raw json.RawMessage, pretty bool) (string, error) {
	raw = bytes.TrimSpace(raw)
	var buf bytes.Buffer
	var err error
	if pretty {
		err = json.Indent(&buf, raw, "", "  ")
	} else {
		err = json.Compact(&buf, raw)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedRecord, err, "registry returned invalid JSON")
	}
	return buf.String(), nil
}

// emit writes the report, through the pager when requested and w is a terminal.
func (c *CLI) emit(w io.Writer, text string, page bool) error {
	if page && isTerminal(w) && text != "" {
		return runPager(text)
	}
	_, err := io.WriteString(w, text)
	return err
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// clock returns the reference time for relative timestamps.
func (c *CLI) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *CLI) location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	return time.Local
}
