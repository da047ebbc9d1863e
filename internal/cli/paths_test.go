package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/seqdiag/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	c := New(&bytes.Buffer{}, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	c := New(&bytes.Buffer{}, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.config.Cache.Dir = "/srv/seqdiag-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/seqdiag-cache" {
		t.Errorf("cacheDir() = %q, want the configured dir", dir)
	}
}

func TestRequireFileCache(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	for _, backend := range []string{"", cache.BackendFile} {
		c.config.Cache.Backend = backend
		if err := c.requireFileCache(); err != nil {
			t.Errorf("backend %q: %v", backend, err)
		}
	}
	c.config.Cache.Backend = cache.BackendRedis
	if err := c.requireFileCache(); err == nil {
		t.Error("redis backend should be rejected")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(appName, "config.toml")) {
		t.Errorf("configPath() = %q, want it to end in %s/config.toml", path, appName)
	}
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := t.Context()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte(key), cache.TTLLayout); err != nil {
			t.Fatal(err)
		}
	}

	n, err := countFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("countFiles() = %d, want 3", n)
	}

	if err := fc.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := countFiles(dir); n != 0 {
		t.Errorf("after Clear countFiles() = %d, want 0", n)
	}
}
