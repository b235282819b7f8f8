// Package cache persists the last known latest version of a package
// between invocations so the registry is not queried on every run.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCacheUnavailable is returned when the platform cache directory
// cannot be determined or created.
var ErrCacheUnavailable = errors.New("cache directory unavailable")

// appDirName is the subdirectory under the platform cache directory
// that scopes cache files to this tool.
const appDirName = "newver"

// DirResolver yields a directory guaranteed to exist, suitable for
// storing small text files. Production code uses PlatformResolver;
// tests substitute a FixedResolver pointing at a temp directory.
type DirResolver interface {
	// CacheDir returns the directory, creating it if missing.
	CacheDir() (string, error)
}

// PlatformResolver resolves the OS-conventional user cache directory.
type PlatformResolver struct{}

// CacheDir returns the platform cache directory scoped to this tool,
// creating it and all parents if missing.
func (PlatformResolver) CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return dir, nil
}

// FixedResolver resolves to a fixed directory, creating it on demand.
// Used in tests to keep cache files out of the user's profile.
type FixedResolver struct {
	Dir string
}

// CacheDir returns the fixed directory, creating it if missing.
func (r FixedResolver) CacheDir() (string, error) {
	if r.Dir == "" {
		return "", fmt.Errorf("%w: no directory configured", ErrCacheUnavailable)
	}
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return r.Dir, nil
}
