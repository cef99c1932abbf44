package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

var testNow = time.Date(2021, 6, 10, 8, 9, 10, 0, time.UTC)

// fakeRegistry serves foo from testdata, a record without max_version as
// "nomax", a record with a mistyped name as "badtype", and 404 for
// everything else.
func fakeRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	fixture, err := os.ReadFile("testdata/foo.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/v1/crates/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch chi.URLParam(r, "name") {
		case "foo":
			w.Write(fixture)
		case "badtype":
			w.Write([]byte(`{"crate": {"id": "badtype", "name": 42, "max_version": "1.0.0"}, "versions": []}`))
		case "nomax":
			w.Write([]byte(`{"crate": {"name": "nomax", "max_version": null}, "versions": []}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errors":[{"detail":"Not Found"}]}`))
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command against the fake registry.
func runCLI(t *testing.T, srv *httptest.Server, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRegistry, "")

	c := New(io.Discard, LogInfo)
	c.now = func() time.Time { return testNow }
	c.loc = time.UTC

	var out, errOut bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--no-cache", "--registry", srv.URL+"/api/v1"))
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestInfoSummary(t *testing.T) {
	srv := fakeRegistry(t)
	out, _, err := runCLI(t, srv, "info", "foo")
	if err != nil {
		t.Fatalf("info: %v", err)
	}

	for _, want := range []string{
		"Crate:          foo\n",
		"Version:        1.2.0\n",
		"Description:    \n",
		"Downloads:      160\n",
		"Updated:        3 days ago\n",
		"Version history:\n",
		"  1.1.0",
		"(yanked)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("output should end with exactly one newline: %q", out)
	}
}

func TestInfoVerbose(t *testing.T) {
	srv := fakeRegistry(t)
	out, _, err := runCLI(t, srv, "info", "-v", "foo")
	if err != nil {
		t.Fatalf("info -v: %v", err)
	}

	for _, want := range []string{
		"License:        MIT OR Apache-2.0\n",
		`Keywords:       ["parser", "cli"]` + "\n",
		"Created at:     Thu Jan 2 03:04:05 2020  (a year ago)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Version history:") {
		t.Errorf("verbose report should not include history:\n%s", out)
	}
}

func TestInfoSelectionFlags(t *testing.T) {
	srv := fakeRegistry(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"repository", []string{"-r"}, "https://github.com/example/foo\n"},
		{"downloads verbose", []string{"-D", "-v"}, "Downloads:      160\n"},
		{"fixed order", []string{"-r", "-d"}, "https://docs.rs/foo\nhttps://github.com/example/foo\n"},
		{"keywords", []string{"-k"}, "parser, cli\n"},
		{"features", []string{"-f"}, "default, std\n"},
		{"features verbose", []string{"-f", "-v"}, "default: std\nstd: \n"},
		{"homepage and keywords", []string{"-k", "-H"}, "https://foo.example\nparser, cli\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"info"}, tt.args...)
			out, _, err := runCLI(t, srv, append(args, "foo")...)
			if err != nil {
				t.Fatalf("info %v: %v", tt.args, err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestInfoVersions(t *testing.T) {
	srv := fakeRegistry(t)
	out, _, err := runCLI(t, srv, "info", "-V", "foo")
	if err != nil {
		t.Fatalf("info -V: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "VERSION") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(out, "use -VV") {
		t.Errorf("no hint expected for 3 versions:\n%s", out)
	}
}

func TestInfoMultiplePackages(t *testing.T) {
	srv := fakeRegistry(t)
	out, errOut, err := runCLI(t, srv, "info", "-r", "foo", "missing", "foo")
	if err == nil || !strings.Contains(err.Error(), "1 of 3 crates failed") {
		t.Fatalf("err = %v, want 1 of 3 failed", err)
	}

	want := "https://github.com/example/foo\n\nhttps://github.com/example/foo\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if !strings.Contains(errOut, "missing") {
		t.Errorf("stderr should name the missing crate: %q", errOut)
	}
}

func TestInfoInvalidName(t *testing.T) {
	srv := fakeRegistry(t)
	_, errOut, err := runCLI(t, srv, "info", "../etc")
	if err == nil {
		t.Fatal("expected error for invalid crate name")
	}
	if errOut == "" {
		t.Error("expected an error line on stderr")
	}
}

func TestInfoMalformedRecord(t *testing.T) {
	srv := fakeRegistry(t)

	_, errOut, err := runCLI(t, srv, "info", "nomax")
	if err == nil {
		t.Fatal("expected error for record without max_version")
	}
	if !strings.Contains(errOut, "nomax") {
		t.Errorf("stderr = %q, want mention of nomax", errOut)
	}

	out, _, err := runCLI(t, srv, "info", "--raw", "nomax")
	if err != nil {
		t.Fatalf("raw output of malformed record: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("raw output is not JSON: %q", out)
	}
}

func TestInfoJSON(t *testing.T) {
	srv := fakeRegistry(t)

	raw, _, err := runCLI(t, srv, "info", "--raw", "foo")
	if err != nil {
		t.Fatalf("--raw: %v", err)
	}
	if strings.Count(raw, "\n") != 1 {
		t.Errorf("--raw should print one line, got %q", raw)
	}

	pretty, _, err := runCLI(t, srv, "info", "--json", "foo")
	if err != nil {
		t.Fatalf("--json: %v", err)
	}
	if !strings.Contains(pretty, "\n  \"crate\": {") {
		t.Errorf("--json should be indented:\n%s", pretty)
	}

	var a, b any
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(pretty), &b); err != nil {
		t.Fatal(err)
	}
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	if !bytes.Equal(ab, bb) {
		t.Error("--raw and --json decode to different documents")
	}
}

func TestInfoJSONAndRawExclusive(t *testing.T) {
	srv := fakeRegistry(t)
	if _, _, err := runCLI(t, srv, "info", "--raw", "--json", "foo"); err == nil {
		t.Fatal("expected error when combining --raw and --json")
	}
}

func TestInfoRequiresCrate(t *testing.T) {
	srv := fakeRegistry(t)
	if _, _, err := runCLI(t, srv, "info"); err == nil {
		t.Fatal("expected error without crate names")
	}
}

func TestInfoStats(t *testing.T) {
	srv := fakeRegistry(t)
	_, errOut, err := runCLI(t, srv, "info", "--stats", "-r", "foo", "missing")
	if err == nil {
		t.Fatal("expected failure for missing crate")
	}

	for _, want := range []string{
		"foo",
		"3 versions",
		"1 fetched, 1 failed · 2 requests, 0 errors · cache 0 hit / 2 miss",
	} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestInfoCacheFallback(t *testing.T) {
	srv := fakeRegistry(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRegistry, "")

	cfgPath := writeConfig(t, "[cache]\nbackend = \"redis\"\nredis_url = \"redis://127.0.0.1:1/0\"\n")

	c := New(io.Discard, LogInfo)
	c.now = func() time.Time { return testNow }
	var out, errOut bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--config", cfgPath, "info", "-r", "--registry", srv.URL + "/api/v1", "foo"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	if out.String() != "https://github.com/example/foo\n" {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "response cache disabled") {
		t.Errorf("stderr should warn about the cache: %q", errOut.String())
	}
}

func TestInfoUndecodableRecord(t *testing.T) {
	srv := fakeRegistry(t)

	_, errOut, err := runCLI(t, srv, "info", "badtype")
	if err == nil {
		t.Fatal("expected error for mistyped record")
	}
	if !strings.Contains(errOut, "badtype") {
		t.Errorf("stderr = %q, want mention of badtype", errOut)
	}

	out, _, err := runCLI(t, srv, "info", "--json", "badtype")
	if err != nil {
		t.Fatalf("--json of mistyped record: %v", err)
	}
	if !strings.Contains(out, `"name": 42`) {
		t.Errorf("--json should print the registry body as served:\n%s", out)
	}
}
