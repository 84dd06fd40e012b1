package revision

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/typst-community/dev-builds/pkg/command"
	dberrors "github.com/typst-community/dev-builds/pkg/errors"
)

// ExecGit reads repository state by running the git binary.
type ExecGit struct {
	runner command.Runner
}

// NewExecGit creates an ExecGit running git through r.
func NewExecGit(r command.Runner) *ExecGit {
	return &ExecGit{runner: r}
}

func (g *ExecGit) git(ctx context.Context, args ...string) (string, error) {
	out, err := g.runner.Run(ctx, "git", args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", dberrors.Wrap(dberrors.ErrCodeCommand, err, "git %s", strings.Join(args, " "))
	}
	return strings.TrimSpace(out), nil
}

// ExactTag implements Repository. git describe exiting non-zero means HEAD
// has no tag; it is not an error.
func (g *ExecGit) ExactTag(ctx context.Context) (string, bool, error) {
	out, err := g.runner.Run(ctx, "git", "describe", "--tags", "--exact-match")
	if err != nil {
		var exitErr *command.ExitError
		if ctx.Err() == nil && errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, dberrors.Wrap(dberrors.ErrCodeCommand, err, "git describe")
	}
	tag := strings.TrimSpace(out)
	return tag, tag != "", nil
}

// RefName implements Repository.
func (g *ExecGit) RefName(ctx context.Context) (string, error) {
	return g.git(ctx, "name-rev", "--name-only", "HEAD")
}

// ShortCommit implements Repository.
func (g *ExecGit) ShortCommit(ctx context.Context) (string, error) {
	return g.git(ctx, "rev-parse", "--short", "HEAD")
}

// CommitterDate implements Repository. The strict ISO 8601 output keeps the
// committer's offset, which Describe converts to UTC.
func (g *ExecGit) CommitterDate(ctx context.Context) (time.Time, error) {
	out, err := g.git(ctx, "log", "-1", "--format=%cd", "--date=iso-strict")
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, out)
	if err != nil {
		return time.Time{}, dberrors.Wrap(dberrors.ErrCodeCommand, err, "parse committer date %q", out)
	}
	return t, nil
}
