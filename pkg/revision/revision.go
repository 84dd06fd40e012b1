// Package revision computes the tag assigned to a newly published build.
//
// A build of a tagged upstream commit reuses the upstream tag; any other
// build is described as "<ref>.<YYYY-MM-DD>.<short commit>". The result is
// prefixed with the name of the workflow doing the publishing:
//
//	typst-v0.12.0
//	docs-main.2024-10-20.3b8c0e7
//
// git describe is not used for snapshots: upstream release tags live on
// branches forked off main, so describing main is always relative to an old
// tag.
package revision

import (
	"context"
	"path"
	"strings"
	"time"
)

// UnknownWorkflow is the workflow name used outside of CI.
const UnknownWorkflow = "unknown"

// dateLayout formats the committer date of snapshots.
const dateLayout = "2006-01-02"

// Repository exposes the version-control state of the upstream checkout.
type Repository interface {
	// ExactTag returns the tag pointing at HEAD, if any.
	ExactTag(ctx context.Context) (tag string, ok bool, err error)
	// RefName returns the ref name of HEAD, such as "main" or "main~2".
	RefName(ctx context.Context) (string, error)
	// ShortCommit returns the abbreviated commit id of HEAD.
	ShortCommit(ctx context.Context) (string, error)
	// CommitterDate returns the committer date of HEAD.
	CommitterDate(ctx context.Context) (time.Time, error)
}

// Generator computes revision tags.
type Generator struct {
	Repo     Repository
	Workflow string
}

// NewGenerator creates a generator for repo. workflow is the short workflow
// name, see [WorkflowName].
func NewGenerator(repo Repository, workflow string) *Generator {
	if workflow == "" {
		workflow = UnknownWorkflow
	}
	return &Generator{Repo: repo, Workflow: workflow}
}

// Tag returns "<workflow>-<revision>".
func (g *Generator) Tag(ctx context.Context) (string, error) {
	rev, err := g.Revision(ctx)
	if err != nil {
		return "", err
	}
	return g.Workflow + "-" + rev, nil
}

// Revision returns the exact tag of HEAD, or a snapshot description when
// HEAD is not tagged.
func (g *Generator) Revision(ctx context.Context) (string, error) {
	tag, ok, err := g.Repo.ExactTag(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		return tag, nil
	}
	return g.Describe(ctx)
}

// Describe returns "<ref>.<committer date in UTC>.<short commit>".
// Ancestor suffixes are dropped from the ref, so "main~2" becomes "main".
func (g *Generator) Describe(ctx context.Context) (string, error) {
	ref, err := g.Repo.RefName(ctx)
	if err != nil {
		return "", err
	}
	ref, _, _ = strings.Cut(ref, "~")

	commit, err := g.Repo.ShortCommit(ctx)
	if err != nil {
		return "", err
	}

	date, err := g.Repo.CommitterDate(ctx)
	if err != nil {
		return "", err
	}

	return ref + "." + date.UTC().Format(dateLayout) + "." + commit, nil
}

// WorkflowName derives the short workflow name from a workflow ref such as
// "typst-community/dev-builds/.github/workflows/typst.yml@refs/heads/main".
func WorkflowName(ref string) string {
	if ref == "" {
		return UnknownWorkflow
	}
	file, _, _ := strings.Cut(ref, "@")
	base := path.Base(file)
	if base == "." || base == "/" {
		return UnknownWorkflow
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
