package git

import (
	"context"
	"errors"
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Repository is a local working copy, exclusively owned by a single
// pipeline run for its duration.
type Repository struct {
	path string
	repo *gogit.Repository
}

// Path returns the working copy location on disk.
func (r *Repository) Path() string {
	return r.path
}

// Clone acquires a full local copy of the source repository (local path or
// remote URL) into dest. The clone is never shallow: the rewrite needs the
// complete history. dest must be missing or an empty directory.
func Clone(ctx context.Context, source, dest string) (*Repository, error) {
	if err := checkDestination(dest); err != nil {
		return nil, err
	}

	repo, err := gogit.PlainCloneContext(ctx, dest, false, &gogit.CloneOptions{
		URL:  source,
		Tags: gogit.AllTags,
	})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		// A source with no commits is still a valid input; the rewrite of
		// an empty history is an empty history.
		repo, err = gogit.PlainInit(dest, false)
	}
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", source, err)
	}

	return &Repository{path: dest, repo: repo}, nil
}

// Open opens an existing working copy.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, err
	}
	return &Repository{path: path, repo: repo}, nil
}

// checkDestination rejects an output directory that already has contents,
// before any clone work starts.
func checkDestination(dest string) error {
	entries, err := os.ReadDir(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("output directory %s: %w", dest, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty", dest)
	}
	return nil
}
