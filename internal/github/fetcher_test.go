package github_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	gh "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/github"
	"github.com/sevigo/code-critic/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_FetchFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetFileContent(gomock.Any(), "octo", "app", "src/db.py", "main").Return("import os\n", nil)

	f := github.NewFetcher(client, 0, discardLogger())
	file, err := f.FetchFile(context.Background(), "https://github.com/octo/app/blob/main/src/db.py")
	require.NoError(t, err)
	assert.Equal(t, &core.FetchedFile{Code: "import os\n", Language: "python", Filename: "db.py"}, file)
}

func TestFetcher_FetchFileErrors(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		mockSetup func(c *mocks.MockClient)
	}{
		{
			name: "unparseable url",
			url:  "https://example.com/not/github",
		},
		{
			name: "api failure",
			url:  "https://github.com/octo/app/blob/main/missing.go",
			mockSetup: func(c *mocks.MockClient) {
				c.EXPECT().GetFileContent(gomock.Any(), "octo", "app", "missing.go", "main").Return("", errors.New("404 Not Found"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(client)
			}

			_, err := github.NewFetcher(client, 0, discardLogger()).FetchFile(context.Background(), tt.url)
			var fetchErr *core.UpstreamFetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "file", fetchErr.Resource)
			assert.Equal(t, tt.url, fetchErr.URL)
		})
	}
}

func TestFetcher_FetchPullRequest(t *testing.T) {
	const url = "https://github.com/octo/app/pull/7"

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().GetPullRequest(gomock.Any(), "octo", "app", 7).Return(&gh.PullRequest{
		Title: gh.Ptr("Fix"),
		Head: &gh.PullRequestBranch{
			SHA:  gh.Ptr("headsha"),
			Repo: &gh.Repository{Name: gh.Ptr("app-fork"), Owner: &gh.User{Login: gh.Ptr("contributor")}},
		},
		Base: &gh.PullRequestBranch{
			Repo: &gh.Repository{HTMLURL: gh.Ptr("https://github.com/octo/app")},
		},
	}, nil)
	client.EXPECT().GetChangedFiles(gomock.Any(), "octo", "app", 7).Return([]github.ChangedFile{
		{Filename: "a.py", Status: "modified"},
		{Filename: "old.py", Status: "removed"},
		{Filename: "b.go", Status: "added"},
		{Filename: "c.js", Status: "modified"},
	}, nil)
	client.EXPECT().GetFileContent(gomock.Any(), "contributor", "app-fork", "a.py", "headsha").Return("x=1", nil)
	client.EXPECT().GetFileContent(gomock.Any(), "contributor", "app-fork", "b.go", "headsha").Return("package b", nil)

	f := github.NewFetcher(client, 2, discardLogger())
	pr, err := f.FetchPullRequest(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, 7, pr.PRNumber)
	assert.Equal(t, "Fix", pr.Title)
	assert.Equal(t, "https://github.com/octo/app", pr.Repo)
	assert.Equal(t, []core.FetchedFile{
		{Code: "x=1", Language: "python", Filename: "a.py"},
		{Code: "package b", Language: "go", Filename: "b.go"},
	}, pr.Files)
}

func TestFetcher_FetchPullRequestFileFailure(t *testing.T) {
	const url = "https://github.com/octo/app/pull/9"

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetPullRequest(gomock.Any(), "octo", "app", 9).Return(&gh.PullRequest{Title: gh.Ptr("T")}, nil)
	client.EXPECT().GetChangedFiles(gomock.Any(), "octo", "app", 9).Return([]github.ChangedFile{{Filename: "a.py"}}, nil)
	client.EXPECT().GetFileContent(gomock.Any(), "octo", "app", "a.py", "").Return("", errors.New("rate limited"))

	_, err := github.NewFetcher(client, 0, discardLogger()).FetchPullRequest(context.Background(), url)
	var fetchErr *core.UpstreamFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestFetcher_FetchPullRequestBadURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := github.NewFetcher(mocks.NewMockClient(ctrl), 0, discardLogger()).
		FetchPullRequest(context.Background(), "https://github.com/octo/app/issues/1")
	var fetchErr *core.UpstreamFetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestLanguageFromPath(t *testing.T) {
	tests := map[string]string{
		"main.go":           "go",
		"src/App.TSX":       "typescript",
		"deploy/Dockerfile": "dockerfile",
		"notes.unknown":     "text",
		"Makefile":          "text",
	}
	for p, want := range tests {
		assert.Equal(t, want, github.LanguageFromPath(p), p)
	}
}
