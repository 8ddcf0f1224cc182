package gitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePullRequestURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantID    int
		wantErr   bool
	}{
		{
			name:      "Valid HTTPS URL",
			url:       "https://github.com/sevigo/code-critic/pull/123",
			wantOwner: "sevigo",
			wantRepo:  "code-critic",
			wantID:    123,
			wantErr:   false,
		},
		{
			name:      "Valid URL without scheme",
			url:       "github.com/sevigo/code-critic/pull/456",
			wantOwner: "sevigo",
			wantRepo:  "code-critic",
			wantID:    456,
			wantErr:   false,
		},
		{
			name:      "URL with trailing slash",
			url:       "https://github.com/sevigo/code-critic/pull/789/",
			wantOwner: "sevigo",
			wantRepo:  "code-critic",
			wantID:    789,
			wantErr:   false,
		},
		{
			name:    "Invalid PR ID",
			url:     "https://github.com/sevigo/code-critic/pull/abc",
			wantErr: true,
		},
		{
			name:    "Invalid format (missing pull)",
			url:     "https://github.com/sevigo/code-critic/issues/123",
			wantErr: true,
		},
		{
			name:    "Invalid format (too many segments)",
			url:     "https://github.com/sevigo/code-critic/pull/123/files",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, id, err := ParsePullRequestURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantOwner, owner)
				assert.Equal(t, tt.wantRepo, repo)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestParseFileURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    FileRef
		wantErr bool
	}{
		{
			name: "Blob URL",
			url:  "https://github.com/octo/app/blob/main/src/db.js",
			want: FileRef{Owner: "octo", Repo: "app", Ref: "main", Path: "src/db.js"},
		},
		{
			name: "Blob URL with line anchor",
			url:  "https://github.com/octo/app/blob/v1.2.0/cmd/main.go#L10-L20",
			want: FileRef{Owner: "octo", Repo: "app", Ref: "v1.2.0", Path: "cmd/main.go"},
		},
		{
			name: "Raw URL",
			url:  "https://raw.githubusercontent.com/octo/app/abc123/README.md",
			want: FileRef{Owner: "octo", Repo: "app", Ref: "abc123", Path: "README.md"},
		},
		{
			name: "Without scheme",
			url:  "github.com/octo/app/blob/main/a.py",
			want: FileRef{Owner: "octo", Repo: "app", Ref: "main", Path: "a.py"},
		},
		{
			name:    "Tree URL",
			url:     "https://github.com/octo/app/tree/main/src",
			wantErr: true,
		},
		{
			name:    "Blob without path",
			url:     "https://github.com/octo/app/blob/main",
			wantErr: true,
		},
		{
			name:    "Other host",
			url:     "https://gitlab.com/octo/app/blob/main/a.go",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
