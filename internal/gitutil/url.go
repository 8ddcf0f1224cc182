package gitutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var prURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)

// FileRef identifies a single file in a GitHub repository at a given ref.
type FileRef struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// ParsePullRequestURL parses a GitHub Pull Request URL and extracts the owner, repo, and PR number.
// Supported format: https://github.com/{owner}/{repo}/pull/{number}
func ParsePullRequestURL(url string) (owner, repo string, prNumber int, err error) {
	// Normalize URL
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")

	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 4 {
		return "", "", 0, fmt.Errorf("invalid pull request URL format: %s", url)
	}

	owner = matches[1]
	repo = matches[2]
	prNumberStr := matches[3]

	prNumber, err = strconv.Atoi(prNumberStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid PR number '%s': %w", prNumberStr, err)
	}

	return owner, repo, prNumber, nil
}

// ParseFileURL parses a link to a file on GitHub.
// Supported formats:
//
//	https://github.com/{owner}/{repo}/blob/{ref}/{path}
//	https://raw.githubusercontent.com/{owner}/{repo}/{ref}/{path}
//
// Branch names containing slashes are not supported; the first segment after
// blob is taken as the ref. Query strings and line anchors are ignored.
func ParseFileURL(rawURL string) (FileRef, error) {
	s := strings.TrimSpace(rawURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return FileRef{}, fmt.Errorf("invalid file URL %q: %w", rawURL, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch strings.ToLower(u.Host) {
	case "github.com", "www.github.com":
		if len(segments) < 5 || segments[2] != "blob" {
			return FileRef{}, fmt.Errorf("invalid file URL format: %s", rawURL)
		}
		return newFileRef(rawURL, segments[0], segments[1], segments[3], segments[4:])
	case "raw.githubusercontent.com":
		if len(segments) < 4 {
			return FileRef{}, fmt.Errorf("invalid file URL format: %s", rawURL)
		}
		return newFileRef(rawURL, segments[0], segments[1], segments[2], segments[3:])
	default:
		return FileRef{}, fmt.Errorf("unsupported file URL host %q", u.Host)
	}
}

func newFileRef(rawURL, owner, repo, ref string, pathSegments []string) (FileRef, error) {
	path := strings.Join(pathSegments, "/")
	if owner == "" || repo == "" || ref == "" || path == "" {
		return FileRef{}, fmt.Errorf("invalid file URL format: %s", rawURL)
	}
	return FileRef{Owner: owner, Repo: repo, Ref: ref, Path: path}, nil
}
