// Package pkgid defines the identifier for a package being checked for updates.
package pkgid

// Package identifies a package on a registry. Owner is set only for
// registries that namespace packages by owner (e.g. GitHub owner/repo).
type Package struct {
	// Name is the package name (never empty)
	Name string
	// Owner is the optional owner/namespace
	Owner string
}

// New creates a package identifier without an owner.
func New(name string) Package {
	return Package{Name: name}
}

// NewWithOwner creates a package identifier namespaced by owner.
func NewWithOwner(owner, name string) Package {
	return Package{Name: name, Owner: owner}
}

// HasOwner reports whether the package is namespaced by an owner.
func (p Package) HasOwner() bool {
	return p.Owner != ""
}

// String returns "owner/name" when an owner is set, else "name".
// Both registry URL building and cache file naming derive from this
// representation, so the two can never drift apart.
func (p Package) String() string {
	if p.Owner != "" {
		return p.Owner + "/" + p.Name
	}
	return p.Name
}
