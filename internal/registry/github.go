package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/newver/newver/internal/pkgid"
)

// GitHub queries GitHub Releases for a repository's latest release.
type GitHub struct {
	// BaseURL is overridable for tests
	BaseURL string
	client  *Client
}

// NewGitHub creates a GitHub Releases registry client.
func NewGitHub(client *Client) *GitHub {
	return &GitHub{
		BaseURL: "https://api.github.com",
		client:  client,
	}
}

// Name returns the registry identifier.
func (g *GitHub) Name() string {
	return "github"
}

// githubReleaseResponse mirrors /repos/{owner}/{repo}/releases/latest.
type githubReleaseResponse struct {
	TagName string `json:"tag_name"`
}

// LatestVersion returns the tag of the latest published release with
// any leading "v" stripped. GitHub packages are namespaced, so the
// identifier must carry an owner.
func (g *GitHub) LatestVersion(ctx context.Context, pkg pkgid.Package) (string, error) {
	if !pkg.HasOwner() {
		return "", fmt.Errorf("%w: %s", ErrOwnerRequired, pkg)
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", g.BaseURL, pkg)

	var resp githubReleaseResponse
	if err := g.client.GetJSON(ctx, url, &resp); err != nil {
		return "", err
	}

	if resp.TagName == "" {
		return "", ErrNoVersionFound
	}

	return strings.TrimPrefix(resp.TagName, "v"), nil
}
