package release

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/typst-community/dev-builds/pkg/command"
	"github.com/typst-community/dev-builds/pkg/errors"
)

// DefaultLimit is the number of releases requested from the hosting API.
const DefaultLimit = 100

// GHLister lists releases with the gh CLI.
type GHLister struct {
	runner command.Runner
	repo   string
	limit  int
}

// NewGHLister creates a lister running gh through r. repo is an optional
// "owner/name" slug; when empty gh uses the repository of the working
// directory. A non-positive limit means DefaultLimit.
func NewGHLister(r command.Runner, repo string, limit int) *GHLister {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &GHLister{runner: r, repo: repo, limit: limit}
}

// Args returns the gh arguments used to list releases.
func (g *GHLister) Args() []string {
	args := []string{
		"release", "list",
		"--exclude-drafts",
		"--json", "name,tagName,publishedAt",
		"--limit", strconv.Itoa(g.limit),
	}
	if g.repo != "" {
		args = append(args, "--repo", g.repo)
	}
	return args
}

// List implements Lister.
func (g *GHLister) List(ctx context.Context) ([]RawRelease, error) {
	out, err := g.runner.Run(ctx, "gh", g.Args()...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeCommand, err, "list releases")
	}

	var releases []RawRelease
	if err := json.Unmarshal([]byte(out), &releases); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCommand, err, "decode gh release list output")
	}
	return releases, nil
}
