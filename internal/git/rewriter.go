package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Rewrite replays the given steps, oldest first, onto a fresh history:
// each new commit reuses the source commit's tree and message, carries the
// replacement author and timestamp as both author and committer, and
// parents the commit created by the previous step.
//
// New objects are only written to the object store until every step has
// been encoded; the branch ref moves once, to the final tip. A failure
// partway through leaves the original branch untouched. The original tip
// stays reachable under refs/original/<branch>.
func (r *Repository) Rewrite(ctx context.Context, steps []RewriteStep) (*RewriteResult, error) {
	if len(steps) == 0 {
		return &RewriteResult{}, nil
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	var parent plumbing.Hash
	for i, step := range steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		src, err := r.repo.CommitObject(plumbing.NewHash(step.Source.SHA))
		if err != nil {
			return nil, fmt.Errorf("resolve commit %s: %w", step.Source.SHA, err)
		}

		sig := object.Signature{
			Name:  step.Author.Name,
			Email: step.Author.Email,
			When:  step.When,
		}
		newc := &object.Commit{
			TreeHash:  src.TreeHash,
			Author:    sig,
			Committer: sig,
			Message:   src.Message,
		}
		if i > 0 {
			newc.ParentHashes = []plumbing.Hash{parent}
		}

		parent, err = saveCommit(r.repo.Storer, newc)
		if err != nil {
			return nil, fmt.Errorf("save rewritten commit for %s: %w", step.Source.SHA, err)
		}
	}

	branch := head.Name()
	backup := plumbing.ReferenceName("refs/original/" + branch.Short())
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(backup, head.Hash())); err != nil {
		return nil, fmt.Errorf("preserve original tip: %w", err)
	}
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(branch, parent)); err != nil {
		return nil, fmt.Errorf("update %s: %w", branch.Short(), err)
	}

	return &RewriteResult{
		Branch:  branch.Short(),
		NewTip:  parent.String(),
		Commits: len(steps),
	}, nil
}

// saveCommit encodes a commit into the object store and returns its hash.
func saveCommit(s storer.EncodedObjectStorer, c *object.Commit) (plumbing.Hash, error) {
	obj := s.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	return s.SetEncodedObject(obj)
}
