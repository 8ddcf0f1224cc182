// Package input turns a review request into the single block of code that gets critiqued.
package input

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sevigo/code-critic/internal/core"
)

// Resolver resolves review requests using a CodeFetcher for GitHub sources.
type Resolver struct {
	fetcher core.CodeFetcher
}

func NewResolver(fetcher core.CodeFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve produces the code unit for req. Unknown input types are treated as pasted
// code. It returns core.ErrEmptyInput when there is nothing to review and a
// *core.UpstreamFetchError when GitHub cannot supply the source.
func (r *Resolver) Resolve(ctx context.Context, req *core.ReviewRequest) (core.CodeUnit, error) {
	var unit core.CodeUnit

	switch req.InputType {
	case core.InputGitHubFile:
		file, err := r.fetcher.FetchFile(ctx, req.GitHubURL)
		if err != nil {
			return core.CodeUnit{}, asFetchError("file", req.GitHubURL, err)
		}
		unit = core.CodeUnit{
			Code:     file.Code,
			Language: file.Language,
			Filename: file.Filename,
		}

	case core.InputGitHubPR:
		pr, err := r.fetcher.FetchPullRequest(ctx, req.GitHubURL)
		if err != nil {
			return core.CodeUnit{}, asFetchError("pull request", req.GitHubURL, err)
		}
		unit = core.CodeUnit{
			Code:       JoinPullRequestFiles(pr.Files),
			Language:   core.MultiFileLanguage,
			Filename:   fmt.Sprintf("PR #%d: %s", pr.PRNumber, pr.Title),
			OriginRepo: pr.Repo,
		}

	default:
		language := req.Language
		if language == "" {
			language = core.DefaultLanguage
		}
		unit = core.CodeUnit{
			Code:     req.Code,
			Language: language,
			Filename: core.DefaultFilename,
		}
	}

	if unit.Code == "" {
		return core.CodeUnit{}, core.ErrEmptyInput
	}
	return unit, nil
}

// JoinPullRequestFiles concatenates PR files in order, each headed by a
// "// File: <name>" line and separated by a blank line.
func JoinPullRequestFiles(files []core.FetchedFile) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, "// File: "+f.Filename+"\n"+f.Code)
	}
	return strings.Join(parts, "\n\n")
}

func asFetchError(resource, url string, err error) error {
	var fetchErr *core.UpstreamFetchError
	if errors.As(err, &fetchErr) {
		return err
	}
	return &core.UpstreamFetchError{Resource: resource, URL: url, Err: err}
}
