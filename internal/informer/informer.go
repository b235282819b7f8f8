// Package informer orchestrates a single update check: cache
// freshness, registry lookup, cache write, and version comparison.
package informer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/newver/newver/internal/cache"
	"github.com/newver/newver/internal/pkgid"
	"github.com/newver/newver/internal/registry"
	"github.com/newver/newver/internal/semver"
)

// DefaultInterval is how long a cached version stays fresh.
const DefaultInterval = 24 * time.Hour

// CheckResult is the outcome of checking one package for updates.
type CheckResult struct {
	// Package is the checked package identifier
	Package pkgid.Package
	// Registry is the registry name
	Registry string
	// CurrentVersion is the version the caller is running
	CurrentVersion string
	// LatestVersion is the latest published version (cached or fetched)
	LatestVersion string
	// HasUpdate is true if LatestVersion is newer than CurrentVersion
	HasUpdate bool
	// FromCache is true when no registry call was made
	FromCache bool
}

// Informer performs update checks through the version cache.
type Informer struct {
	interval time.Duration
	resolver cache.DirResolver
	client   *registry.Client
}

// Option is a functional option for configuring Informer.
type Option func(*Informer)

// WithInterval sets the freshness interval. A zero or negative
// interval makes every check hit the registry.
func WithInterval(d time.Duration) Option {
	return func(i *Informer) {
		i.interval = d
	}
}

// WithResolver sets the cache directory resolver.
func WithResolver(r cache.DirResolver) Option {
	return func(i *Informer) {
		i.resolver = r
	}
}

// WithClient sets the registry HTTP client.
func WithClient(c *registry.Client) Option {
	return func(i *Informer) {
		i.client = c
	}
}

// New creates an Informer with the default interval, the platform
// cache directory, and a default HTTP client.
func New(opts ...Option) *Informer {
	inf := &Informer{
		interval: DefaultInterval,
		resolver: cache.PlatformResolver{},
		client:   registry.NewClient(),
	}
	for _, opt := range opts {
		opt(inf)
	}
	return inf
}

// Client returns the registry HTTP client, for wiring registries that
// share the informer's transport.
func (i *Informer) Client() *registry.Client {
	return i.client
}

// Check checks whether a newer version of pkg than currentVersion has
// been published on reg. The cached version is used when fresh; a
// stale or missing cache triggers a registry lookup whose result
// overwrites the cache. If force is true the cache freshness is
// ignored and the registry is always queried.
func (i *Informer) Check(ctx context.Context, reg registry.Registry, pkg pkgid.Package, currentVersion string, force bool) (*CheckResult, error) {
	result := &CheckResult{
		Package:        pkg,
		Registry:       reg.Name(),
		CurrentVersion: currentVersion,
	}

	entry, err := cache.NewVersionFile(i.resolver, reg.Name(), pkg, currentVersion)
	if err != nil {
		return nil, err
	}

	age, err := entry.Age()
	if err != nil {
		return nil, err
	}

	// Zero age means the cache was just bootstrapped (or the clock
	// skewed); both cases warrant a real lookup.
	stale := force || age == 0 || age > i.interval

	if !stale {
		cached, err := entry.ReadVersion()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// The file vanished between the stat and the read.
			// Treat as stale and fall through to a fetch.
			stale = true
		case err != nil:
			return nil, err
		case corrupted(cached):
			// The file must contain exactly one version string.
			// Replace it with a fresh lookup.
			latest, ferr := reg.LatestVersion(ctx, pkg)
			if ferr != nil {
				return nil, ferr
			}
			if rerr := entry.Recreate(latest); rerr != nil {
				return nil, rerr
			}
			result.LatestVersion = latest
		default:
			result.LatestVersion = cached
			result.FromCache = true
		}
	}

	if stale {
		latest, err := reg.LatestVersion(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch latest version: %w", err)
		}
		if err := entry.WriteVersion(latest); err != nil {
			return nil, err
		}
		result.LatestVersion = latest
	}

	result.HasUpdate = semver.IsNewer(result.LatestVersion, currentVersion)
	return result, nil
}

// corrupted reports whether a cached value cannot be a version string
// written by WriteVersion: empty, or carrying trailing metadata.
func corrupted(v string) bool {
	return strings.TrimSpace(v) == "" || strings.ContainsAny(v, "\n\r")
}
