package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Error variables for watch list errors
var (
	// ErrWatchListNotFound is returned when packages.toml does not exist
	ErrWatchListNotFound = errors.New("packages.toml not found")
	// ErrInvalidRegistry is returned for an unknown registry kind
	ErrInvalidRegistry = errors.New("invalid registry: must be 'crates', 'github', 'pypi' or 'html'")
	// ErrMissingName is returned when an entry has no package name
	ErrMissingName = errors.New("missing required field: name")
	// ErrMissingOwner is returned when a github entry has no owner
	ErrMissingOwner = errors.New("missing required field: owner (required for github)")
	// ErrMissingURL is returned when an html entry has no url
	ErrMissingURL = errors.New("missing required field: url (required for html)")
	// ErrMissingSelector is returned when an html entry has neither selector nor xpath
	ErrMissingSelector = errors.New("missing required field: selector or xpath (required for html)")
	// ErrMissingCurrentVersion is returned when an entry has no current version
	ErrMissingCurrentVersion = errors.New("missing required field: current_version")
)

// WatchEntry configures one package to check for updates.
type WatchEntry struct {
	// Registry selects the registry kind: "crates", "github", "pypi" or "html"
	Registry string `toml:"registry"`
	// Name is the package name
	Name string `toml:"name"`
	// Owner is the owner/namespace (required for github)
	Owner string `toml:"owner,omitempty"`
	// CurrentVersion is the version currently installed
	CurrentVersion string `toml:"current_version"`
	// URL is the release page URL (html registry only)
	URL string `toml:"url,omitempty"`
	// Selector is a CSS selector for the version (html registry only)
	Selector string `toml:"selector,omitempty"`
	// XPath is an XPath expression for the version (html registry only)
	XPath string `toml:"xpath,omitempty"`
	// Pattern is an optional regex with a capture group (html registry only)
	Pattern string `toml:"pattern,omitempty"`
}

// WatchList is the parsed packages.toml: entry name -> configuration.
type WatchList struct {
	Entries map[string]WatchEntry
}

// WatchListPath returns the watch list location next to the config file.
func WatchListPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(paths[0]), "packages.toml"), nil
}

// LoadWatchList loads and parses packages.toml from path.
func LoadWatchList(path string) (*WatchList, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrWatchListNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read packages.toml: %w", err)
	}

	var entries map[string]WatchEntry
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse packages.toml: %w", err)
	}

	return &WatchList{Entries: entries}, nil
}

// ValidateEntry validates a single watch list entry.
func ValidateEntry(name string, e *WatchEntry) error {
	if e.Name == "" {
		return fmt.Errorf("entry %s: %w", name, ErrMissingName)
	}
	if e.CurrentVersion == "" {
		return fmt.Errorf("entry %s: %w", name, ErrMissingCurrentVersion)
	}

	switch e.Registry {
	case "crates", "pypi":
	case "github":
		if e.Owner == "" {
			return fmt.Errorf("entry %s: %w", name, ErrMissingOwner)
		}
	case "html":
		if e.URL == "" {
			return fmt.Errorf("entry %s: %w", name, ErrMissingURL)
		}
		if e.Selector == "" && e.XPath == "" {
			return fmt.Errorf("entry %s: %w", name, ErrMissingSelector)
		}
	default:
		return fmt.Errorf("entry %s: %w: got %q", name, ErrInvalidRegistry, e.Registry)
	}

	return nil
}

// ValidateAll validates every entry in the watch list.
// Returns the first validation error encountered, or nil.
func (w *WatchList) ValidateAll() error {
	for name, entry := range w.Entries {
		entryCopy := entry
		if err := ValidateEntry(name, &entryCopy); err != nil {
			return err
		}
	}
	return nil
}
