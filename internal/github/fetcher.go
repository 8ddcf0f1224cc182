package github

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/gitutil"
)

const (
	// DefaultMaxPRFiles caps how many files of a pull request are reviewed.
	DefaultMaxPRFiles = 20

	fetchConcurrency = 4
	removedStatus    = "removed"
)

// Fetcher implements core.CodeFetcher on top of the GitHub API.
type Fetcher struct {
	client     Client
	maxPRFiles int
	logger     *slog.Logger
}

func NewFetcher(client Client, maxPRFiles int, logger *slog.Logger) *Fetcher {
	if maxPRFiles <= 0 {
		maxPRFiles = DefaultMaxPRFiles
	}
	return &Fetcher{client: client, maxPRFiles: maxPRFiles, logger: logger}
}

// FetchFile downloads the file a GitHub blob or raw URL points at.
func (f *Fetcher) FetchFile(ctx context.Context, url string) (*core.FetchedFile, error) {
	ref, err := gitutil.ParseFileURL(url)
	if err != nil {
		return nil, &core.UpstreamFetchError{Resource: "file", URL: url, Err: err}
	}

	content, err := f.client.GetFileContent(ctx, ref.Owner, ref.Repo, ref.Path, ref.Ref)
	if err != nil {
		return nil, &core.UpstreamFetchError{Resource: "file", URL: url, Err: err}
	}

	return &core.FetchedFile{
		Code:     content,
		Language: LanguageFromPath(ref.Path),
		Filename: path.Base(ref.Path),
	}, nil
}

// FetchPullRequest downloads the head version of every file a pull request adds or
// changes, in the order GitHub lists them. Removed files are skipped and at most
// maxPRFiles files are fetched.
func (f *Fetcher) FetchPullRequest(ctx context.Context, url string) (*core.PullRequestFiles, error) {
	owner, repo, number, err := gitutil.ParsePullRequestURL(url)
	if err != nil {
		return nil, &core.UpstreamFetchError{Resource: "pull request", URL: url, Err: err}
	}

	pr, err := f.client.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return nil, &core.UpstreamFetchError{Resource: "pull request", URL: url, Err: err}
	}

	changed, err := f.client.GetChangedFiles(ctx, owner, repo, number)
	if err != nil {
		return nil, &core.UpstreamFetchError{Resource: "pull request files", URL: url, Err: err}
	}

	var paths []string
	for _, file := range changed {
		if file.Status == removedStatus {
			continue
		}
		paths = append(paths, file.Filename)
	}
	if len(paths) > f.maxPRFiles {
		f.logger.Warn("pull request has too many files, reviewing only the first ones",
			"pr", url, "files", len(paths), "limit", f.maxPRFiles)
		paths = paths[:f.maxPRFiles]
	}

	// Forks keep the changed files in the head repository.
	headOwner, headRepo := owner, repo
	if head := pr.GetHead().GetRepo(); head != nil && head.GetOwner().GetLogin() != "" {
		headOwner, headRepo = head.GetOwner().GetLogin(), head.GetName()
	}
	headSHA := pr.GetHead().GetSHA()

	files := make([]core.FetchedFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, p := range paths {
		g.Go(func() error {
			content, err := f.client.GetFileContent(gctx, headOwner, headRepo, p, headSHA)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			files[i] = core.FetchedFile{
				Code:     content,
				Language: LanguageFromPath(p),
				Filename: p,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &core.UpstreamFetchError{Resource: "pull request file", URL: url, Err: err}
	}

	repoURL := pr.GetBase().GetRepo().GetHTMLURL()
	if repoURL == "" {
		repoURL = fmt.Sprintf("https://github.com/%s/%s", owner, repo)
	}

	return &core.PullRequestFiles{
		Files:    files,
		PRNumber: number,
		Title:    pr.GetTitle(),
		Repo:     repoURL,
	}, nil
}
