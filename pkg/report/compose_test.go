package report

import (
	"strings"
	"testing"

	"github.com/matzehuels/cargo-info/pkg/integrations/crates"
)

func TestComposeFullVerbose(t *testing.T) {
	s := mustSummary(t, fooResponse())
	got := NewComposer(testClock).Compose(s, Full(true))

	want := strings.Join([]string{
		"Crate:          foo",
		"Version:        1.2.0",
		"Description:    ",
		"Downloads:      160",
		"Homepage:       https://foo.example",
		"Documentation:  https://docs.rs/foo",
		"Repository:     https://github.com/example/foo",
		"License:        MIT OR Apache-2.0",
		`Keywords:       ["parser", "cli"]`,
		"Created at:     Thu Jan 2 03:04:05 2020  (a year ago)",
		"Updated at:     Mon Jun 7 08:09:10 2021  (3 days ago)",
	}, "\n")
	if got != want {
		t.Errorf("Compose(Full(true)) =\n%s\nwant\n%s", got, want)
	}
}

func TestComposeFullSummary(t *testing.T) {
	s := mustSummary(t, fooResponse())
	lines := strings.Split(NewComposer(testClock).Compose(s, Full(false)), "\n")

	labels := []string{
		"Crate:", "Version:", "Description:", "Downloads:", "Homepage:",
		"Documentation:", "Repository:", "Updated:", "Version history:",
	}
	if len(lines) != len(labels)+4 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(labels)+4, strings.Join(lines, "\n"))
	}
	for i, label := range labels {
		if !strings.HasPrefix(lines[i], label) {
			t.Errorf("line %d = %q, want label %q", i, lines[i], label)
		}
	}
	if lines[7] != "Updated:        3 days ago" {
		t.Errorf("updated line = %q", lines[7])
	}
	if lines[8] != "Version history:" {
		t.Errorf("history label = %q", lines[8])
	}
	for _, line := range lines[9:] {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("history line not indented: %q", line)
		}
	}
	if !strings.HasPrefix(lines[9], "  VERSION") {
		t.Errorf("history header = %q", lines[9])
	}
}

func TestComposeFullSummaryTruncatesHistory(t *testing.T) {
	raw := fooResponse()
	for range 4 {
		raw.Versions = append(raw.Versions, raw.Versions[2])
	}
	out := NewComposer(testClock).Compose(mustSummary(t, raw), Full(false))
	if !strings.HasSuffix(out, "  ... use -VV to show all 7 versions") {
		t.Errorf("summary should end with an indented hint:\n%s", out)
	}
}

func TestComposeLabelAlignment(t *testing.T) {
	s := mustSummary(t, fooResponse())
	for _, verbose := range []bool{true, false} {
		lines := strings.Split(NewComposer(testClock).Compose(s, Full(verbose)), "\n")
		for _, line := range lines {
			if strings.HasPrefix(line, " ") || line == "Version history:" {
				continue
			}
			if len(line) < LabelWidth || !strings.Contains(line[:LabelWidth], ":") {
				t.Errorf("line not aligned to label column: %q", line)
			}
		}
	}
}

func TestComposeNullDescription(t *testing.T) {
	raw := fooResponse()
	raw.Crate.Description = nil
	out := NewComposer(testClock).Compose(mustSummary(t, raw), Full(true))

	lines := strings.Split(out, "\n")
	if lines[2] != "Description:    " {
		t.Errorf("description line = %q, want %q", lines[2], "Description:    ")
	}
	if strings.Contains(out, "null") {
		t.Error("output should never contain null")
	}
}

func TestComposeSingleField(t *testing.T) {
	s := mustSummary(t, fooResponse())
	c := NewComposer(testClock)

	tests := []struct {
		field   Field
		verbose bool
		want    string
	}{
		{FieldRepository, false, "https://github.com/example/foo"},
		{FieldRepository, true, "Repository:     https://github.com/example/foo"},
		{FieldDocumentation, false, "https://docs.rs/foo"},
		{FieldDocumentation, true, "Documentation:  https://docs.rs/foo"},
		{FieldHomepage, false, "https://foo.example"},
		{FieldHomepage, true, "Homepage:       https://foo.example"},
		{FieldDownloads, false, "160"},
		{FieldDownloads, true, "Downloads:      160"},
	}
	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			if got := c.Compose(s, SingleField(tt.field, tt.verbose)); got != tt.want {
				t.Errorf("Compose(SingleField(%v, %v)) = %q, want %q", tt.field, tt.verbose, got, tt.want)
			}
		})
	}
}

func TestComposeFeatureList(t *testing.T) {
	s := mustSummary(t, fooResponse())
	c := NewComposer(testClock)

	if got := c.Compose(s, FeatureList(false)); got != "default, derive, std" {
		t.Errorf("FeatureList(false) = %q", got)
	}
	want := "default: std, derive\nderive: foo_derive\nstd: "
	if got := c.Compose(s, FeatureList(true)); got != want {
		t.Errorf("FeatureList(true) = %q, want %q", got, want)
	}

	raw := fooResponse()
	raw.Crate.MaxVersion = ptr("2.0.0")
	if got := c.Compose(mustSummary(t, raw), FeatureList(true)); got != "" {
		t.Errorf("FeatureList without matching version = %q, want empty", got)
	}
}

func TestComposeKeywordList(t *testing.T) {
	raw := fooResponse()
	raw.Crate.Keywords = []string{"cli", "parser", "cli"}
	got := NewComposer(testClock).Compose(mustSummary(t, raw), KeywordList())
	if got != "cli, parser, cli" {
		t.Errorf("KeywordList() = %q", got)
	}
}

func TestComposeIdempotent(t *testing.T) {
	s := mustSummary(t, fooResponse())
	c := NewComposer(testClock)
	for _, m := range []Mode{Full(true), Full(false), FeatureList(true), KeywordList(), SingleField(FieldHomepage, true)} {
		if a, b := c.Compose(s, m), c.Compose(s, m); a != b {
			t.Errorf("mode %+v not idempotent:\n%s\n---\n%s", m, a, b)
		}
	}
}

func TestComposeNoVersions(t *testing.T) {
	s := mustSummary(t, &crates.Response{Crate: &crates.Crate{Name: ptr("bare"), MaxVersion: ptr("0.1.0")}})
	out := NewComposer(testClock).Compose(s, Full(false))
	lines := strings.Split(out, "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "  VERSION") {
		t.Errorf("empty history should end with the header, got %q", last)
	}
	if got := NewComposer(testClock).History(s, VersionLimit(2), false); !strings.HasPrefix(got, "VERSION") {
		t.Errorf("History() = %q", got)
	}
}
