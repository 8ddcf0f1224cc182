package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/code-critic/internal/config"
)

// NewClient builds a GitHub client from configuration. A configured GitHub App
// installation takes precedence over a personal access token; with neither the
// client is anonymous and limited to public repositories. httpClient supplies the
// base transport and may be nil.
func NewClient(cfg config.GitHubConfig, httpClient *http.Client, logger *slog.Logger) (Client, error) {
	base := http.DefaultTransport
	if httpClient != nil && httpClient.Transport != nil {
		base = httpClient.Transport
	}

	var transport http.RoundTripper
	switch {
	case cfg.AppID != 0 && cfg.InstallationID != 0 && cfg.PrivateKeyPath != "":
		t, err := newInstallationTransport(cfg, base, logger)
		if err != nil {
			return nil, err
		}
		transport = t
	case cfg.Token != "":
		logger.Info("using GitHub personal access token")
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			Base:   base,
		}
	default:
		logger.Warn("no GitHub credentials configured, only public repositories can be reviewed")
		transport = base
	}

	client := github.NewClient(&http.Client{Transport: transport})
	if cfg.APIURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIURL, err)
		}
		client.BaseURL = u
	}

	return NewGitHubClient(client, logger), nil
}

// newInstallationTransport authenticates as a GitHub App installation. The transport
// refreshes the installation token on its own when it expires.
func newInstallationTransport(cfg config.GitHubConfig, base http.RoundTripper, logger *slog.Logger) (http.RoundTripper, error) {
	logger.Info("creating GitHub installation transport", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	privateKey, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.PrivateKeyPath, err)
	}

	itr, err := ghinstallation.New(base, cfg.AppID, cfg.InstallationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App installation transport: %w", err)
	}
	if cfg.APIURL != "" {
		itr.BaseURL = strings.TrimSuffix(cfg.APIURL, "/")
	}
	return itr, nil
}
