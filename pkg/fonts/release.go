package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/apex/log"

	"github.com/workbench-install/workbench/pkg/httpclient"
)

// gitHubAPIBaseURL is the base URL for GitHub API calls (overridable for testing)
var gitHubAPIBaseURL = "https://api.github.com"

// gitHubRelease is the slice of the GitHub release API response we need.
type gitHubRelease struct {
	TagName string `json:"tag_name"`
}

// latestReleaseTag resolves the latest release tag of repo ("owner/name")
// via the GitHub API.
func latestReleaseTag(ctx context.Context, repo string) (string, error) {
	log.Debugf("resolving latest release of %s", repo)

	url := fmt.Sprintf("%s/repos/%s/releases/latest", gitHubAPIBaseURL, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := httpclient.New().Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, string(body))
	}

	var release gitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("no tag_name found in GitHub response")
	}
	return release.TagName, nil
}
