package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds each registry request. There are no retries:
// a failed check is simply skipped until the next invocation.
const DefaultTimeout = 5 * time.Second

// defaultUserAgent identifies this tool to registries. crates.io
// rejects requests without a User-Agent.
const defaultUserAgent = "newver/1.0"

// Client is the HTTP layer shared by all registry implementations.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Token is an optional GitHub personal access token. It is sent
	// only to the GitHub API and raises the rate limit.
	Token string
}

// NewClient creates a registry HTTP client with the default timeout.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent: defaultUserAgent,
	}
}

// GetJSON fetches url and decodes the JSON response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse registry response: %w", err)
	}
	return nil
}

// Get fetches url and returns the raw response body.
// Registry-level failures map onto the package error taxonomy.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.Token != "" && isGitHubAPIURL(url) {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		reset := resp.Header.Get("X-RateLimit-Reset")
		if reset != "" {
			return nil, fmt.Errorf("%w: resets at %s", ErrRateLimit, reset)
		}
		return nil, ErrRateLimit
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response: %w", err)
	}

	return body, nil
}

// isGitHubAPIURL reports whether url targets the GitHub API, so the
// token is never leaked to other hosts.
func isGitHubAPIURL(url string) bool {
	return strings.HasPrefix(url, "https://api.github.com/") ||
		strings.HasPrefix(url, "http://api.github.com/")
}
