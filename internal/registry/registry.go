// Package registry implements clients for package registries that
// publish latest-version metadata.
package registry

import (
	"context"
	"errors"

	"github.com/newver/newver/internal/pkgid"
)

var (
	// ErrNotFound indicates the package does not exist on the registry
	ErrNotFound = errors.New("package not found on registry")
	// ErrRateLimit indicates the registry API rate limit was exceeded
	ErrRateLimit = errors.New("registry API rate limit exceeded")
	// ErrAPIError indicates a general registry API error
	ErrAPIError = errors.New("registry API error")
	// ErrNoVersionFound is returned when a response contains no usable version
	ErrNoVersionFound = errors.New("no version found in registry response")
	// ErrOwnerRequired is returned when a registry needs an owner/namespace
	ErrOwnerRequired = errors.New("registry requires an owner (owner/name)")
)

// Registry fetches the latest published version of a package.
type Registry interface {
	// Name returns the registry identifier used in cache file names.
	Name() string

	// LatestVersion returns the latest published version string for
	// the package, or a registry error.
	LatestVersion(ctx context.Context, pkg pkgid.Package) (string, error)
}
