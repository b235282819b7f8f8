package registry

import (
	"context"
	"fmt"

	"github.com/newver/newver/internal/pkgid"
)

// Crates queries the crates.io registry.
type Crates struct {
	// BaseURL is overridable for tests
	BaseURL string
	client  *Client
}

// NewCrates creates a crates.io registry client.
func NewCrates(client *Client) *Crates {
	return &Crates{
		BaseURL: "https://crates.io",
		client:  client,
	}
}

// Name returns the registry identifier.
func (c *Crates) Name() string {
	return "crates"
}

// cratesVersionsResponse mirrors /api/v1/crates/{name}/versions.
type cratesVersionsResponse struct {
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
	} `json:"versions"`
}

// LatestVersion returns the newest non-yanked version of a crate.
// Versions are ordered newest-first by the API.
func (c *Crates) LatestVersion(ctx context.Context, pkg pkgid.Package) (string, error) {
	url := fmt.Sprintf("%s/api/v1/crates/%s/versions", c.BaseURL, pkg)

	var resp cratesVersionsResponse
	if err := c.client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}

	for _, v := range resp.Versions {
		if !v.Yanked && v.Num != "" {
			return v.Num, nil
		}
	}

	return "", ErrNoVersionFound
}
