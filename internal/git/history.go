package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// Commits lists the history reachable from HEAD, oldest first. Merge side
// branches are linearized away by following first parents only.
func (r *Repository) Commits(ctx context.Context) ([]CommitInfo, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Empty repository: no commits to list.
			return nil, nil
		}
		return nil, err
	}

	c, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD commit %s: %w", head.Hash(), err)
	}

	var infos []CommitInfo
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		infos = append(infos, CommitInfo{
			SHA:     c.Hash.String(),
			Tree:    c.TreeHash.String(),
			Author:  Identity{Name: c.Author.Name, Email: c.Author.Email},
			When:    c.Author.When,
			Message: c.Message,
		})

		if c.NumParents() == 0 {
			break
		}
		c, err = c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("resolve parent of %s: %w", infos[len(infos)-1].SHA, err)
		}
	}

	// Walked newest to oldest; callers want history order.
	for i, j := 0, len(infos)-1; i < j; i, j = i+1, j-1 {
		infos[i], infos[j] = infos[j], infos[i]
	}
	return infos, nil
}
