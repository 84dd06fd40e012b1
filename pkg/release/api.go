package release

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v39/github"

	"github.com/typst-community/dev-builds/pkg/errors"
)

// APILister lists releases through the GitHub REST API.
// Requests are unauthenticated and only the first page is read.
type APILister struct {
	client *github.Client
	owner  string
	repo   string
	limit  int
}

// NewAPILister creates a lister for the "owner/name" repository slug.
// apiURL overrides the API endpoint (GitHub Enterprise, tests); empty means
// api.github.com. A nil httpClient means http.DefaultClient.
func NewAPILister(httpClient *http.Client, apiURL, slug string, limit int) (*APILister, error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid repository %q (want owner/name)", slug)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	client := github.NewClient(httpClient)
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse API URL %q", apiURL)
		}
		client.BaseURL = u
	}

	return &APILister{client: client, owner: owner, repo: repo, limit: limit}, nil
}

// List implements Lister.
func (a *APILister) List(ctx context.Context) ([]RawRelease, error) {
	opts := &github.ListOptions{PerPage: a.limit}
	releases, _, err := a.client.Repositories.ListReleases(ctx, a.owner, a.repo, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if _, ok := err.(*github.RateLimitError); ok {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list releases of %s/%s: rate limited", a.owner, a.repo)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list releases of %s/%s", a.owner, a.repo)
	}

	result := make([]RawRelease, 0, len(releases))
	for _, r := range releases {
		if r.GetDraft() {
			continue
		}
		result = append(result, RawRelease{
			Name:        r.GetName(),
			TagName:     r.GetTagName(),
			PublishedAt: formatTimestamp(r.GetPublishedAt()),
		})
	}
	return result, nil
}

// String identifies the lister in logs.
func (a *APILister) String() string {
	return fmt.Sprintf("%s%s/%s", a.client.BaseURL, a.owner, a.repo)
}

// formatTimestamp renders t the way gh does ("2024-01-01T00:00:00Z").
func formatTimestamp(t github.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
