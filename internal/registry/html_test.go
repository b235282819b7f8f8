package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newver/newver/internal/pkgid"
)

const releasesPage = `<!DOCTYPE html>
<html>
<body>
  <h1>Downloads</h1>
  <div class="release">
    <span class="version">v3.2.1</span>
    <a href="/download">Download</a>
  </div>
  <p id="banner">Latest release: tool-2.5.0.tar.gz</p>
</body>
</html>`

func htmlServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(releasesPage))
	}))
}

func TestHTMLPageCSSSelector(t *testing.T) {
	server := htmlServer(t)
	defer server.Close()

	page := NewHTMLPage(NewClient(), server.URL)
	page.Selector = "span.version"

	version, err := page.LatestVersion(context.Background(), pkgid.New("tool"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if version != "v3.2.1" {
		t.Errorf("Expected 'v3.2.1', got %q", version)
	}
}

func TestHTMLPageXPath(t *testing.T) {
	server := htmlServer(t)
	defer server.Close()

	page := NewHTMLPage(NewClient(), server.URL)
	page.XPath = `//span[@class="version"]`

	version, err := page.LatestVersion(context.Background(), pkgid.New("tool"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if version != "v3.2.1" {
		t.Errorf("Expected 'v3.2.1', got %q", version)
	}
}

func TestHTMLPagePattern(t *testing.T) {
	server := htmlServer(t)
	defer server.Close()

	page := NewHTMLPage(NewClient(), server.URL)
	page.Selector = "#banner"
	page.Pattern = `tool-([\d.]+)\.tar\.gz`

	version, err := page.LatestVersion(context.Background(), pkgid.New("tool"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if version != "2.5.0" {
		t.Errorf("Expected '2.5.0', got %q", version)
	}
}

func TestHTMLPageNoMatch(t *testing.T) {
	server := htmlServer(t)
	defer server.Close()

	page := NewHTMLPage(NewClient(), server.URL)
	page.Selector = "span.nonexistent"

	_, err := page.LatestVersion(context.Background(), pkgid.New("tool"))
	if !errors.Is(err, ErrNoElementFound) {
		t.Errorf("Expected ErrNoElementFound, got %v", err)
	}
}

func TestHTMLPageNoSelectorConfigured(t *testing.T) {
	page := NewHTMLPage(NewClient(), "http://example.com")

	_, err := page.LatestVersion(context.Background(), pkgid.New("tool"))
	if !errors.Is(err, ErrNoSelectorOrXPath) {
		t.Errorf("Expected ErrNoSelectorOrXPath, got %v", err)
	}
}

func TestHTMLPagePatternWithoutCaptureGroup(t *testing.T) {
	server := htmlServer(t)
	defer server.Close()

	page := NewHTMLPage(NewClient(), server.URL)
	page.Selector = "#banner"
	page.Pattern = `[\d.]+`

	_, err := page.LatestVersion(context.Background(), pkgid.New("tool"))
	if !errors.Is(err, ErrNoCaptureGroup) {
		t.Errorf("Expected ErrNoCaptureGroup, got %v", err)
	}
}
