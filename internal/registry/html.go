package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"

	"github.com/newver/newver/internal/pkgid"
)

var (
	// ErrNoElementFound is returned when no element matches the selector/xpath
	ErrNoElementFound = errors.New("no element found matching selector")
	// ErrInvalidXPath is returned when the XPath expression syntax is invalid
	ErrInvalidXPath = errors.New("invalid XPath expression")
	// ErrNoSelectorOrXPath is returned when neither selector nor xpath is configured
	ErrNoSelectorOrXPath = errors.New("either selector or xpath must be provided")
	// ErrNoCaptureGroup is returned when the regex pattern has no capture group
	ErrNoCaptureGroup = errors.New("regex pattern must contain at least one capture group")
)

// HTMLPage extracts the latest version from an arbitrary release page,
// for upstreams that publish no JSON API. The version is located with
// a CSS selector or an XPath expression, optionally post-processed
// with a regex capture group.
type HTMLPage struct {
	// URL is the page to fetch
	URL string
	// Selector is a CSS selector for the version element
	Selector string
	// XPath is an XPath expression, used when Selector is empty
	XPath string
	// Pattern is an optional regex applied to the extracted text;
	// the first capture group becomes the version
	Pattern string

	client   *Client
	compiled *regexp.Regexp
}

// NewHTMLPage creates an HTML page registry client.
func NewHTMLPage(client *Client, url string) *HTMLPage {
	return &HTMLPage{
		URL:    url,
		client: client,
	}
}

// Name returns the registry identifier.
func (h *HTMLPage) Name() string {
	return "html"
}

// LatestVersion fetches the configured page and extracts the version.
// The package identifier plays no part in the URL here; it only scopes
// the cache file.
func (h *HTMLPage) LatestVersion(ctx context.Context, pkg pkgid.Package) (string, error) {
	if h.Selector == "" && h.XPath == "" {
		return "", ErrNoSelectorOrXPath
	}

	content, err := h.client.Get(ctx, h.URL)
	if err != nil {
		return "", err
	}

	var text string
	if h.Selector != "" {
		text, err = h.extractCSS(content)
	} else {
		text, err = h.extractXPath(content)
	}
	if err != nil {
		return "", err
	}

	if h.Pattern != "" {
		text, err = h.applyPattern(text)
		if err != nil {
			return "", err
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoVersionFound
	}

	return text, nil
}

// extractCSS returns the text of the first element matching the CSS selector.
func (h *HTMLPage) extractCSS(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(h.Selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoElementFound, h.Selector)
	}

	return selection.First().Text(), nil
}

// extractXPath returns the text of the first node matching the XPath expression.
func (h *HTMLPage) extractXPath(content []byte) (string, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, h.XPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidXPath, err)
	}
	if len(nodes) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoElementFound, h.XPath)
	}

	return htmlquery.InnerText(nodes[0]), nil
}

// applyPattern runs the configured regex over text and returns the
// first capture group.
func (h *HTMLPage) applyPattern(text string) (string, error) {
	if h.compiled == nil {
		re, err := regexp.Compile(h.Pattern)
		if err != nil {
			return "", fmt.Errorf("invalid pattern: %w", err)
		}
		if re.NumSubexp() < 1 {
			return "", ErrNoCaptureGroup
		}
		h.compiled = re
	}

	matches := h.compiled.FindStringSubmatch(text)
	if matches == nil {
		return "", fmt.Errorf("%w: pattern %q", ErrNoVersionFound, h.Pattern)
	}

	return matches[1], nil
}
