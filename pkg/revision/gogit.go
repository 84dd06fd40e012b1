package revision

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	dberrors "github.com/typst-community/dev-builds/pkg/errors"
)

// maxNameDepth bounds the first-parent walk when naming HEAD.
const maxNameDepth = 10000

// GoGit reads repository state in-process with go-git, so no git binary is
// needed.
type GoGit struct {
	repo *git.Repository
}

// NewGoGit wraps an opened repository.
func NewGoGit(repo *git.Repository) *GoGit {
	return &GoGit{repo: repo}
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string) (*GoGit, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, dberrors.Wrap(dberrors.ErrCodeRepository, err, "open repository %s", dir)
	}
	return NewGoGit(repo), nil
}

func (g *GoGit) head() (*plumbing.Reference, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, dberrors.Wrap(dberrors.ErrCodeRepository, err, "resolve HEAD")
	}
	return head, nil
}

// ExactTag implements Repository. Lightweight and annotated tags are both
// considered; when several point at HEAD the smallest name wins.
func (g *GoGit) ExactTag(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	head, err := g.head()
	if err != nil {
		return "", false, err
	}

	iter, err := g.repo.Tags()
	if err != nil {
		return "", false, dberrors.Wrap(dberrors.ErrCodeRepository, err, "list tags")
	}

	var matches []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target, err := g.tagTarget(ref)
		if err != nil {
			return err
		}
		if target == head.Hash() {
			matches = append(matches, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return "", false, dberrors.Wrap(dberrors.ErrCodeRepository, err, "resolve tags")
	}

	if len(matches) == 0 {
		return "", false, nil
	}
	sort.Strings(matches)
	return matches[0], true, nil
}

// tagTarget returns the commit a tag reference points at.
func (g *GoGit) tagTarget(ref *plumbing.Reference) (plumbing.Hash, error) {
	tag, err := g.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, err := tag.Commit()
		if err != nil {
			// Tags of trees or blobs never match a commit.
			return plumbing.ZeroHash, nil
		}
		return commit.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, err
	}
}

// RefName implements Repository, approximating git name-rev: HEAD on a
// branch is named after the branch; a detached HEAD is named after the
// branch reaching it in the fewest first-parent steps, as "name~N". Local
// branches win ties over remote-tracking ones. Without any such branch the
// result is "undefined", as with git.
func (g *GoGit) RefName(ctx context.Context) (string, error) {
	head, err := g.head()
	if err != nil {
		return "", err
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}

	refs, err := g.repo.References()
	if err != nil {
		return "", dberrors.Wrap(dberrors.ErrCodeRepository, err, "list references")
	}

	type candidate struct {
		name     string
		distance int
		remote   bool
	}
	var best *candidate

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		var c candidate
		switch {
		case ref.Name().IsBranch():
			c.name = ref.Name().Short()
		case ref.Name().IsRemote():
			c.name = "remotes/" + ref.Name().Short()
			c.remote = true
		default:
			return nil
		}

		d, ok, err := g.distance(ref.Hash(), head.Hash())
		if err != nil || !ok {
			return err
		}
		c.distance = d

		if best == nil ||
			c.distance < best.distance ||
			(c.distance == best.distance && !c.remote && best.remote) ||
			(c.distance == best.distance && c.remote == best.remote && c.name < best.name) {
			best = &c
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", dberrors.Wrap(dberrors.ErrCodeRepository, err, "name HEAD")
	}

	if best == nil {
		return "undefined", nil
	}
	if best.distance == 0 {
		return best.name, nil
	}
	return fmt.Sprintf("%s~%d", best.name, best.distance), nil
}

// distance counts first-parent steps from tip back to target.
func (g *GoGit) distance(tip, target plumbing.Hash) (int, bool, error) {
	hash := tip
	for d := 0; d <= maxNameDepth; d++ {
		if hash == target {
			return d, true, nil
		}
		commit, err := g.repo.CommitObject(hash)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				// Shallow clones end in missing parents.
				return 0, false, nil
			}
			return 0, false, err
		}
		if len(commit.ParentHashes) == 0 {
			return 0, false, nil
		}
		hash = commit.ParentHashes[0]
	}
	return 0, false, nil
}

// ShortCommit implements Repository with git's default abbreviation length.
func (g *GoGit) ShortCommit(ctx context.Context) (string, error) {
	head, err := g.head()
	if err != nil {
		return "", err
	}
	return head.Hash().String()[:7], nil
}

// CommitterDate implements Repository.
func (g *GoGit) CommitterDate(ctx context.Context) (time.Time, error) {
	commit, err := g.headCommit()
	if err != nil {
		return time.Time{}, err
	}
	return commit.Committer.When, nil
}

func (g *GoGit) headCommit() (*object.Commit, error) {
	head, err := g.head()
	if err != nil {
		return nil, err
	}
	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, dberrors.Wrap(dberrors.ErrCodeRepository, err, "read HEAD commit")
	}
	return commit, nil
}

// String identifies the backend in logs.
func (g *GoGit) String() string {
	wt, err := g.repo.Worktree()
	if err != nil {
		return "go-git"
	}
	return "go-git:" + strings.TrimSuffix(wt.Filesystem.Root(), "/")
}
