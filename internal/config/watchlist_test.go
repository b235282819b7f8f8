package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeWatchList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write packages.toml: %v", err)
	}
	return path
}

func TestLoadWatchList(t *testing.T) {
	path := writeWatchList(t, `
[ripgrep]
registry = "github"
owner = "BurntSushi"
name = "ripgrep"
current_version = "14.0.0"

[flask]
registry = "pypi"
name = "flask"
current_version = "3.0.0"
`)

	wl, err := LoadWatchList(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(wl.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(wl.Entries))
	}

	rg, exists := wl.Entries["ripgrep"]
	if !exists {
		t.Fatal("Expected 'ripgrep' entry")
	}
	if rg.Registry != "github" || rg.Owner != "BurntSushi" {
		t.Errorf("Unexpected entry: %+v", rg)
	}

	if err := wl.ValidateAll(); err != nil {
		t.Errorf("Expected valid watch list, got %v", err)
	}
}

func TestLoadWatchListMissing(t *testing.T) {
	_, err := LoadWatchList(filepath.Join(t.TempDir(), "packages.toml"))
	if !errors.Is(err, ErrWatchListNotFound) {
		t.Errorf("Expected ErrWatchListNotFound, got %v", err)
	}
}

func TestLoadWatchListMalformed(t *testing.T) {
	path := writeWatchList(t, `[broken`)

	if _, err := LoadWatchList(path); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   WatchEntry
		wantErr error
	}{
		{
			name:  "valid crates",
			entry: WatchEntry{Registry: "crates", Name: "ripgrep", CurrentVersion: "14.0.0"},
		},
		{
			name:  "valid github",
			entry: WatchEntry{Registry: "github", Owner: "o", Name: "repo", CurrentVersion: "1.0.0"},
		},
		{
			name: "valid html with selector",
			entry: WatchEntry{
				Registry: "html", Name: "tool", CurrentVersion: "1.0.0",
				URL: "https://example.com/releases", Selector: ".version",
			},
		},
		{
			name:    "missing name",
			entry:   WatchEntry{Registry: "crates", CurrentVersion: "1.0.0"},
			wantErr: ErrMissingName,
		},
		{
			name:    "missing current version",
			entry:   WatchEntry{Registry: "crates", Name: "foo"},
			wantErr: ErrMissingCurrentVersion,
		},
		{
			name:    "github without owner",
			entry:   WatchEntry{Registry: "github", Name: "repo", CurrentVersion: "1.0.0"},
			wantErr: ErrMissingOwner,
		},
		{
			name:    "html without url",
			entry:   WatchEntry{Registry: "html", Name: "tool", CurrentVersion: "1.0.0", Selector: ".v"},
			wantErr: ErrMissingURL,
		},
		{
			name: "html without selector or xpath",
			entry: WatchEntry{
				Registry: "html", Name: "tool", CurrentVersion: "1.0.0",
				URL: "https://example.com",
			},
			wantErr: ErrMissingSelector,
		},
		{
			name:    "unknown registry",
			entry:   WatchEntry{Registry: "npm", Name: "left-pad", CurrentVersion: "1.0.0"},
			wantErr: ErrInvalidRegistry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry("test", &tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAllReportsFirstError(t *testing.T) {
	wl := &WatchList{Entries: map[string]WatchEntry{
		"bad": {Registry: "gopher", Name: "x", CurrentVersion: "1.0.0"},
	}}

	if err := wl.ValidateAll(); !errors.Is(err, ErrInvalidRegistry) {
		t.Errorf("Expected ErrInvalidRegistry, got %v", err)
	}
}
