package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// githubURLPatterns covers the accepted repository URL shapes. Only public
// https/ssh GitHub URLs are supported.
var githubURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://github\.com/[\w.\-]+/[\w.\-]+/?$`),
	regexp.MustCompile(`(?i)^https?://github\.com/[\w.\-]+/[\w.\-]+\.git$`),
	regexp.MustCompile(`(?i)^git@github\.com:[\w.\-]+/[\w.\-]+\.git$`),
}

// ValidateURL reports whether url is a well-formed GitHub repository URL.
func ValidateURL(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return false
	}
	for _, pattern := range githubURLPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// SanitizeURL normalizes a repository URL: trims whitespace, upgrades http to
// https, and strips trailing slashes and the .git suffix.
func SanitizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if strings.HasPrefix(rawURL, "http://") {
		rawURL = "https://" + strings.TrimPrefix(rawURL, "http://")
	}
	rawURL = strings.TrimRight(rawURL, "/")
	rawURL = strings.TrimSuffix(rawURL, ".git")
	return rawURL
}

// RepoName derives the "owner_repo" directory name from a GitHub URL.
func RepoName(rawURL string) (string, error) {
	owner, repo, err := splitOwnerRepo(rawURL)
	if err != nil {
		return "", err
	}
	return owner + "_" + repo, nil
}

func splitOwnerRepo(rawURL string) (owner, repo string, err error) {
	rawURL = strings.TrimSuffix(strings.TrimRight(rawURL, "/"), ".git")

	if strings.HasPrefix(rawURL, "git@") {
		// git@github.com:owner/repo
		_, path, found := strings.Cut(rawURL, ":")
		if !found {
			return "", "", fmt.Errorf("malformed ssh URL: %s", rawURL)
		}
		parts := strings.Split(path, "/")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("malformed ssh URL: %s", rawURL)
		}
		return parts[0], parts[1], nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("malformed URL %s: %w", rawURL, err)
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("URL does not name an owner/repository pair: %s", rawURL)
	}
	return parts[0], parts[1], nil
}

// fetchRepoSizeKB asks the GitHub API for the repository size (GitHub reports
// kilobytes). The caller treats any error as "unknown size" and proceeds.
func (a *Analyzer) fetchRepoSizeKB(ctx context.Context, rawURL string) (int64, error) {
	owner, repo, err := splitOwnerRepo(rawURL)
	if err != nil {
		return 0, err
	}

	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s", owner, repo)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "crackr/1.0")
	if a.cfg.GitHubToken != "" {
		req.Header.Set("Authorization", "token "+a.cfg.GitHubToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GitHub API returned %d for %s", resp.StatusCode, apiURL)
	}

	var meta struct {
		Size int64 `json:"size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return 0, err
	}
	return meta.Size, nil
}
