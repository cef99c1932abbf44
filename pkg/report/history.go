package report

import (
	"fmt"
	"math"
	"strconv"
)

// History column headers.
var historyHeader = []string{"VERSION", "RELEASED", "DOWNLOADS"}

const (
	yankedMarker = "(yanked)"
	hintFormat   = "... use -VV to show all %d versions"
)

// RecentVersions is the number of versions shown in the default report and
// for a single -V.
const RecentVersions = 5

// HistoryOptions controls [RenderHistory].
type HistoryOptions struct {
	// Limit is the maximum number of versions shown. Values <= 0 show only
	// the header.
	Limit int
	// Prefix is written before every line, including header and hint.
	Prefix string
	// AbsoluteDates shows release timestamps instead of relative phrases.
	AbsoluteDates bool
}

// RenderHistory renders the first opts.Limit versions as a table.
//
// Versions are taken in the given order, which is expected to be newest
// first. Yanked versions get a trailing "(yanked)" marker. When versions
// were left out, a final line tells the user how to see all of them.
func RenderHistory(versions []Version, opts HistoryOptions, clock Clock) string {
	limit := min(max(opts.Limit, 0), len(versions))

	t := NewTable(historyHeader...)
	for _, v := range versions[:limit] {
		t.Append(v.Number, clock.Format(v.CreatedAt, !opts.AbsoluteDates), strconv.FormatUint(v.Downloads, 10))
	}

	lines := t.Lines()
	for i, v := range versions[:limit] {
		if v.Yanked {
			lines[i+1] += yankedMarker
		}
	}
	if opts.Limit > 0 && opts.Limit < len(versions) {
		lines = append(lines, fmt.Sprintf(hintFormat, len(versions)))
	}
	return joinPrefixed(lines, opts.Prefix)
}

// VersionLimit maps the number of -V flags to a history limit:
// 0 shows none, 1 shows [RecentVersions], 2 or more shows all.
func VersionLimit(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return RecentVersions
	default:
		return math.MaxInt
	}
}
