package registry

import (
	"context"
	"fmt"

	"github.com/newver/newver/internal/pkgid"
)

// PyPI queries the Python Package Index.
type PyPI struct {
	// BaseURL is overridable for tests
	BaseURL string
	client  *Client
}

// NewPyPI creates a PyPI registry client.
func NewPyPI(client *Client) *PyPI {
	return &PyPI{
		BaseURL: "https://pypi.org",
		client:  client,
	}
}

// Name returns the registry identifier.
func (p *PyPI) Name() string {
	return "pypi"
}

// pypiResponse mirrors /pypi/{name}/json.
type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// LatestVersion returns the latest published version of a package.
func (p *PyPI) LatestVersion(ctx context.Context, pkg pkgid.Package) (string, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", p.BaseURL, pkg)

	var resp pypiResponse
	if err := p.client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}

	if resp.Info.Version == "" {
		return "", ErrNoVersionFound
	}

	return resp.Info.Version, nil
}
