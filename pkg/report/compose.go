package report

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// LabelWidth is the width of the label column in labeled output.
const LabelWidth = 16

// Field selects a single value for [SingleField] output.
type Field int

const (
	FieldDocumentation Field = iota
	FieldDownloads
	FieldHomepage
	FieldRepository
)

func (f Field) label() string {
	switch f {
	case FieldDocumentation:
		return "Documentation:"
	case FieldDownloads:
		return "Downloads:"
	case FieldHomepage:
		return "Homepage:"
	case FieldRepository:
		return "Repository:"
	default:
		return ""
	}
}

func (f Field) String() string {
	return strings.ToLower(strings.TrimSuffix(f.label(), ":"))
}

func (f Field) value(s *Summary) string {
	switch f {
	case FieldDocumentation:
		return s.Documentation()
	case FieldDownloads:
		return strconv.FormatUint(s.Downloads(), 10)
	case FieldHomepage:
		return s.Homepage()
	case FieldRepository:
		return s.Repository()
	default:
		return ""
	}
}

// ModeKind distinguishes the kinds of output [Composer.Compose] produces.
type ModeKind int

const (
	ModeFull ModeKind = iota
	ModeSingleField
	ModeFeatures
	ModeKeywords
)

// Mode selects what [Composer.Compose] renders. Build one with [Full],
// [SingleField], [FeatureList] or [KeywordList].
type Mode struct {
	Kind    ModeKind
	Verbose bool
	Field   Field
}

// Full renders the whole crate report.
func Full(verbose bool) Mode { return Mode{Kind: ModeFull, Verbose: verbose} }

// SingleField renders one value, labeled when verbose.
func SingleField(f Field, verbose bool) Mode {
	return Mode{Kind: ModeSingleField, Field: f, Verbose: verbose}
}

// FeatureList renders the latest version's features; verbose adds their
// dependencies.
func FeatureList(verbose bool) Mode { return Mode{Kind: ModeFeatures, Verbose: verbose} }

// KeywordList renders the crate's keywords.
func KeywordList() Mode { return Mode{Kind: ModeKeywords} }

// Composer assembles crate reports. It holds no state beyond its clock, so a
// Composer may be shared across goroutines.
type Composer struct {
	Clock Clock
}

// NewComposer returns a Composer rendering times against clock.
func NewComposer(clock Clock) *Composer {
	return &Composer{Clock: clock}
}

// Compose renders s in the given mode. The result has no trailing newline.
func (c *Composer) Compose(s *Summary, m Mode) string {
	switch m.Kind {
	case ModeSingleField:
		if m.Verbose {
			return labeled(m.Field.label(), m.Field.value(s))
		}
		return m.Field.value(s)
	case ModeFeatures:
		return features(s.Features(), m.Verbose)
	case ModeKeywords:
		return strings.Join(s.keywords, ", ")
	default:
		if m.Verbose {
			return c.verbose(s)
		}
		return c.summary(s)
	}
}

// History renders the version table for the -V flag. Verbose shows absolute
// release dates.
func (c *Composer) History(s *Summary, limit int, verbose bool) string {
	return RenderHistory(s.versions, HistoryOptions{Limit: limit, AbsoluteDates: verbose}, c.Clock)
}

func (c *Composer) verbose(s *Summary) string {
	return strings.Join([]string{
		labeled("Crate:", s.Name()),
		labeled("Version:", s.LatestVersion()),
		labeled("Description:", s.Description()),
		labeled("Downloads:", strconv.FormatUint(s.Downloads(), 10)),
		labeled("Homepage:", s.Homepage()),
		labeled("Documentation:", s.Documentation()),
		labeled("Repository:", s.Repository()),
		labeled("License:", s.License()),
		labeled("Keywords:", bracketed(s.keywords)),
		labeled("Created at:", c.Clock.Both(s.CreatedAt())),
		labeled("Updated at:", c.Clock.Both(s.UpdatedAt())),
	}, "\n")
}

func (c *Composer) summary(s *Summary) string {
	history := RenderHistory(s.versions, HistoryOptions{Limit: RecentVersions, Prefix: "  "}, c.Clock)
	return strings.Join([]string{
		labeled("Crate:", s.Name()),
		labeled("Version:", s.LatestVersion()),
		labeled("Description:", s.Description()),
		labeled("Downloads:", strconv.FormatUint(s.Downloads(), 10)),
		labeled("Homepage:", s.Homepage()),
		labeled("Documentation:", s.Documentation()),
		labeled("Repository:", s.Repository()),
		labeled("Updated:", c.Clock.Relative(s.UpdatedAt())),
		labeled("Version history:", ""),
		history,
	}, "\n")
}

func labeled(label, value string) string {
	return fmt.Sprintf("%-*s%s", LabelWidth, label, value)
}

// bracketed renders a list as ["a", "b"].
func bracketed(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = strconv.Quote(it)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// features lists feature names in sorted order; verbose puts each on its own
// line with its dependencies.
func features(m map[string][]string, verbose bool) string {
	names := slices.Sorted(maps.Keys(m))

	if !verbose {
		return strings.Join(names, ", ")
	}
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name + ": " + strings.Join(m[name], ", ")
	}
	return strings.Join(lines, "\n")
}
