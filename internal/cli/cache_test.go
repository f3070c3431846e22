package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ontograph/pkg/cache"
	"github.com/matzehuels/ontograph/pkg/config"
)

func TestCacheDir(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/tmp/ontograph-cache"
	if dir, err := cacheDir(cfg); err != nil || dir != "/tmp/ontograph-cache" {
		t.Errorf("cacheDir(configured) = %q, %v", dir, err)
	}

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir(default) error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()
	if n := countEntries(dir); n != 0 {
		t.Errorf("empty dir: %d entries", n)
	}
	if n := countEntries(filepath.Join(dir, "missing")); n != 0 {
		t.Errorf("missing dir: %d entries", n)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := fc.Set(context.Background(), fmt.Sprintf("k%d", i), []byte("v"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	if n := countEntries(dir); n != 3 {
		t.Errorf("countEntries = %d, want 3", n)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, _ := cache.NewFileCache(dir)
	_ = fc.Set(context.Background(), "registry:metrics", []byte("[]"), time.Hour)

	conf := fmt.Sprintf("[cache]\nbackend = \"file\"\ndir = %q\n", dir)
	if _, err := runCLI(t, conf, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countEntries(dir); n != 0 {
		t.Errorf("%d entries left after clear", n)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir should survive clear: %v", err)
	}

	// Clearing an empty cache is not an error.
	if _, err := runCLI(t, conf, "cache", "clear"); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestCacheClearNonFileBackend(t *testing.T) {
	if _, err := runCLI(t, "[cache]\nbackend = \"none\"\n", "cache", "clear"); err != nil {
		t.Errorf("cache clear (none): %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "responses")
	out, err := runCLI(t, fmt.Sprintf("[cache]\ndir = %q\n", dir), "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}
