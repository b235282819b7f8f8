package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newver/newver/internal/pkgid"
)

func TestCratesLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/crates/ripgrep/versions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"versions": [
			{"num": "1.2.0", "yanked": false},
			{"num": "1.1.0", "yanked": false}
		]}`))
	}))
	defer server.Close()

	crates := NewCrates(NewClient())
	crates.BaseURL = server.URL

	version, err := crates.LatestVersion(context.Background(), pkgid.New("ripgrep"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if version != "1.2.0" {
		t.Errorf("Expected '1.2.0', got %q", version)
	}
}

func TestCratesSkipsYanked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions": [
			{"num": "2.0.0", "yanked": true},
			{"num": "1.9.0", "yanked": false}
		]}`))
	}))
	defer server.Close()

	crates := NewCrates(NewClient())
	crates.BaseURL = server.URL

	version, err := crates.LatestVersion(context.Background(), pkgid.New("foo"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if version != "1.9.0" {
		t.Errorf("Expected yanked version to be skipped, got %q", version)
	}
}

func TestCratesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	crates := NewCrates(NewClient())
	crates.BaseURL = server.URL

	_, err := crates.LatestVersion(context.Background(), pkgid.New("no-such-crate"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCratesEmptyVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions": []}`))
	}))
	defer server.Close()

	crates := NewCrates(NewClient())
	crates.BaseURL = server.URL

	_, err := crates.LatestVersion(context.Background(), pkgid.New("foo"))
	if !errors.Is(err, ErrNoVersionFound) {
		t.Errorf("Expected ErrNoVersionFound, got %v", err)
	}
}

func TestCratesName(t *testing.T) {
	if got := NewCrates(NewClient()).Name(); got != "crates" {
		t.Errorf("Expected 'crates', got %q", got)
	}
}
