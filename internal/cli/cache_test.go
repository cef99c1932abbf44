package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cargo-info/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("XDG_CACHE_HOME", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir: %v", err)
		}
		if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", "/home/tester")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir: %v", err)
		}
		if want := filepath.Join("/home/tester", ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	path, err := configFile()
	if err != nil {
		t.Fatalf("configFile: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-config", appName, "config.toml"); path != want {
		t.Errorf("configFile() = %q, want %q", path, want)
	}
}

func runCacheCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCachePathCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	got := runCacheCommand(t, "cache", "path")
	if want := filepath.Join(home, appName) + "\n"; got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if out := runCacheCommand(t, "cache", "clear"); !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on missing dir = %q", out)
	}

	fc, err := cache.NewFileCache(filepath.Join(home, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"crates:serde", "crates:tokio"} {
		if err := fc.Set(ctx, key, []byte(`{}`), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out := runCacheCommand(t, "cache", "clear")
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear output = %q", out)
	}
	if _, ok, _ := fc.Get(ctx, "crates:serde"); ok {
		t.Error("entry still present after clear")
	}
}
