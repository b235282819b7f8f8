package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPlatformResolver(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	dir, err := PlatformResolver{}.CacheDir()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if filepath.Base(dir) != appDirName {
		t.Errorf("Expected directory named %q, got %q", appDirName, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Cache directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected directory, got file")
	}
}

func TestFixedResolverCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	got, err := FixedResolver{Dir: dir}.CacheDir()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != dir {
		t.Errorf("Expected %q, got %q", dir, got)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Directory not created: %v", err)
	}
}

func TestFixedResolverEmpty(t *testing.T) {
	_, err := FixedResolver{}.CacheDir()
	if err == nil {
		t.Fatal("Expected error for empty resolver")
	}
	if !errors.Is(err, ErrCacheUnavailable) {
		t.Errorf("Expected ErrCacheUnavailable, got %v", err)
	}
}
