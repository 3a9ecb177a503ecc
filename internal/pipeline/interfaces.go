package pipeline

import (
	"context"

	gitx "github.com/neurotica01/crackify/internal/git"
	githubx "github.com/neurotica01/crackify/internal/github"
)

// Backend abstracts the version-control operations the pipeline drives.
// This keeps the orchestration testable against a fake without touching
// real repositories.
type Backend interface {
	// Acquire produces a full local clone of source at dest.
	Acquire(ctx context.Context, source, dest string) (Repo, error)
}

// Repo is an acquired working copy.
type Repo interface {
	// Commits lists history oldest first.
	Commits(ctx context.Context) ([]gitx.CommitInfo, error)
	// Rewrite replays the steps onto a new history.
	Rewrite(ctx context.Context, steps []gitx.RewriteStep) (*gitx.RewriteResult, error)
	// Push publishes the rewritten history.
	Push(ctx context.Context, opts gitx.PushOptions) error
}

// Provisioner ensures a publish destination exists before the push.
type Provisioner interface {
	Ensure(ctx context.Context, remoteURL string) error
}

// Compile-time interface conformance checks.
var (
	_ Repo        = (*gitx.Repository)(nil)
	_ Backend     = gitBackend{}
	_ Provisioner = (*githubx.Provisioner)(nil)
)

// gitBackend adapts the go-git backend to the Backend interface.
type gitBackend struct{}

func (gitBackend) Acquire(ctx context.Context, source, dest string) (Repo, error) {
	repo, err := gitx.Clone(ctx, source, dest)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
