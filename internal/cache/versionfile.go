package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/newver/newver/internal/pkgid"
)

// versionSuffix is the fixed suffix of every cache file name.
const versionSuffix = "latest-version"

// VersionFile is the on-disk cache of the last known latest version of
// one (registry, package) pair. The file contains exactly the version
// string, nothing else. The path is a pure function of the registry
// name and package identifier, so rebuilding a VersionFile with the
// same inputs always points at the same file.
type VersionFile struct {
	path string
	// seedVersion is written to bootstrap the file when a freshness
	// check finds it missing. It is not necessarily the cached value.
	seedVersion string
}

// NewVersionFile builds the cache entry for a (registry, package) pair.
// The file name is "{registry}-{owner-}{name}-latest-version", joined
// to the resolver's directory. Returns ErrCacheUnavailable (wrapped)
// when the resolver fails.
func NewVersionFile(resolver DirResolver, registryName string, pkg pkgid.Package, seedVersion string) (*VersionFile, error) {
	dir, err := resolver.CacheDir()
	if err != nil {
		return nil, err
	}

	owner := ""
	if pkg.HasOwner() {
		owner = pkg.Owner + "-"
	}
	fileName := fmt.Sprintf("%s-%s%s-%s", registryName, owner, pkg.Name, versionSuffix)

	return &VersionFile{
		path:        filepath.Join(dir, fileName),
		seedVersion: seedVersion,
	}, nil
}

// Path returns the location of the backing file.
func (f *VersionFile) Path() string {
	return f.path
}

// Age returns the time elapsed since the file was last written.
//
// A missing file is not an error: it is healed by writing the seed
// version and reporting zero age, which any positive freshness
// interval treats as stale. That forces exactly one registry lookup on
// first use and leaves a baseline for the next run. A modification
// time in the future (clock skew) is clamped to zero rather than
// reported as a negative duration.
func (f *VersionFile) Age() (time.Duration, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := f.WriteVersion(f.seedVersion); werr != nil {
				return 0, werr
			}
			return 0, nil
		}
		return 0, fmt.Errorf("failed to stat cache file: %w", err)
	}

	age := time.Since(info.ModTime())
	if age < 0 {
		age = 0
	}
	return age, nil
}

// WriteVersion replaces the file's entire contents with version,
// creating the file if absent. No newline or formatting is added.
func (f *VersionFile) WriteVersion(version string) error {
	if err := os.WriteFile(f.path, []byte(version), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Recreate deletes the backing file and writes version to a new one.
// Deletion failure, including the file not existing, aborts the
// operation before anything is written. Unlike Age, a missing file
// here is an error: callers recreate only a file they have already
// observed, so absence means something else removed it.
func (f *VersionFile) Recreate(version string) error {
	if err := os.Remove(f.path); err != nil {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return f.WriteVersion(version)
}

// ReadVersion returns the raw file contents. A missing file is an
// error satisfying errors.Is(err, fs.ErrNotExist).
func (f *VersionFile) ReadVersion() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to read cache file: %w", err)
	}
	return string(data), nil
}
