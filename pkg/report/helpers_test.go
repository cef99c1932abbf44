package report

import (
	"testing"
	"time"

	"github.com/matzehuels/cargo-info/pkg/integrations/crates"
)

func ptr[T any](v T) *T { return &v }

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// testClock is three days after foo 1.2.0 was published.
var testClock = Clock{Now: *at("2021-06-10T08:09:10Z"), Location: time.UTC}

// fooResponse mirrors the three-version crate used throughout the tests.
func fooResponse() *crates.Response {
	return &crates.Response{
		Crate: &crates.Crate{
			ID:            "foo",
			Name:          ptr("foo"),
			MaxVersion:    ptr("1.2.0"),
			Homepage:      ptr("https://foo.example"),
			Documentation: ptr("https://docs.rs/foo"),
			Repository:    ptr("https://github.com/example/foo"),
			Downloads:     160,
			Keywords:      []string{"parser", "cli"},
			CreatedAt:     at("2020-01-02T03:04:05Z"),
			UpdatedAt:     at("2021-06-07T08:09:10Z"),
		},
		Versions: []crates.Version{
			{Num: "1.2.0", CreatedAt: at("2021-06-07T08:09:10Z"), Downloads: 100,
				License: ptr("MIT OR Apache-2.0"),
				Features: map[string][]string{"std": {}, "default": {"std", "derive"}, "derive": {"foo_derive"}}},
			{Num: "1.1.0", CreatedAt: at("2021-01-01T00:00:00Z"), Downloads: 50, Yanked: true, License: ptr("MIT")},
			{Num: "1.0.0", CreatedAt: at("2020-01-02T03:04:05Z"), Downloads: 10},
		},
	}
}

func mustSummary(t *testing.T, raw *crates.Response) *Summary {
	t.Helper()
	s, err := NewSummary(raw)
	if err != nil {
		t.Fatalf("NewSummary() error: %v", err)
	}
	return s
}
