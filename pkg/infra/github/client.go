package github

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nekocat0/relaybot/pkg/domain/interfaces"
	"github.com/nekocat0/relaybot/pkg/domain/model"
)

const publicUserAgent = "Mozilla/5.0"

type client struct {
	githubClient *github.Client
	// downloadClient follows redirects to the asset CDN and carries the
	// longer timeout binary fetches need
	downloadClient *http.Client
}

type config struct {
	token      string
	baseURL    string
	apiTimeout time.Duration
	dlTimeout  time.Duration
}

// Option is a functional option for the GitHub client
type Option func(*config)

// WithToken sets an API token for authenticated requests. Without a token
// only public repositories are reachable.
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL overrides the API base URL, mainly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// NewClient creates a new GitHub release source
func NewClient(opts ...Option) (interfaces.ReleaseSource, error) {
	cfg := &config{
		apiTimeout: 10 * time.Second,
		dlTimeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	gh := github.NewClient(&http.Client{Timeout: cfg.apiTimeout})
	if cfg.token != "" {
		gh = gh.WithAuthToken(cfg.token)
	}

	if cfg.baseURL != "" {
		raw := cfg.baseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		parsed, err := url.Parse(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", cfg.baseURL))
		}
		gh.BaseURL = parsed
	}

	return &client{
		githubClient:   gh,
		downloadClient: &http.Client{Timeout: cfg.dlTimeout},
	}, nil
}

// ListAssets fetches the current asset listing of a release, preferring the
// release ID over the tag name
func (c *client) ListAssets(ctx context.Context, ref model.ReleaseRef) ([]model.Asset, error) {
	var (
		release *github.RepositoryRelease
		err     error
	)

	switch {
	case ref.ID != 0:
		release, _, err = c.githubClient.Repositories.GetRelease(ctx, ref.Owner, ref.Repo, ref.ID)
	case ref.Tag != "":
		release, _, err = c.githubClient.Repositories.GetReleaseByTag(ctx, ref.Owner, ref.Repo, ref.Tag)
	default:
		return nil, goerr.New("release ref has neither ID nor tag",
			goerr.V("owner", ref.Owner), goerr.V("repo", ref.Repo))
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch release",
			goerr.V("owner", ref.Owner), goerr.V("repo", ref.Repo),
			goerr.V("release_id", ref.ID), goerr.V("tag", ref.Tag))
	}

	assets := make([]model.Asset, 0, len(release.Assets))
	for _, a := range release.Assets {
		assets = append(assets, model.Asset{
			ID:         a.GetID(),
			Name:       a.GetName(),
			Size:       int64(a.GetSize()),
			APIURL:     a.GetURL(),
			BrowserURL: a.GetBrowserDownloadURL(),
		})
	}
	return assets, nil
}

// DownloadAsset fetches asset content through the API content endpoint.
// Passing the redirect-following client makes go-github stream the body
// instead of returning a redirect URL.
func (c *client) DownloadAsset(ctx context.Context, ref model.ReleaseRef, asset model.Asset) ([]byte, error) {
	rc, _, err := c.githubClient.Repositories.DownloadReleaseAsset(
		ctx, ref.Owner, ref.Repo, asset.ID, c.downloadClient)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download release asset",
			goerr.V("owner", ref.Owner), goerr.V("repo", ref.Repo),
			goerr.V("asset_id", asset.ID), goerr.V("asset_name", asset.Name))
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read asset content",
			goerr.V("asset_name", asset.Name))
	}
	return data, nil
}

// DownloadPublic fetches content from a public download URL with a
// browser-like User-Agent
func (c *client) DownloadPublic(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", rawURL))
	}
	req.Header.Set("User-Agent", publicUserAgent)

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download from public URL", goerr.V("url", rawURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code for public download",
			goerr.V("url", rawURL), goerr.V("status", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("url", rawURL))
	}
	return data, nil
}
