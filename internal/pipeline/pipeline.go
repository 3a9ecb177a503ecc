// Package pipeline sequences the rewrite end to end:
// acquire, plan, rewrite, optionally publish. Strictly sequential, no
// retries; every failure aborts the remaining steps.
package pipeline

import (
	"context"

	gitx "github.com/neurotica01/crackify/internal/git"
	githubx "github.com/neurotica01/crackify/internal/github"
	"github.com/neurotica01/crackify/internal/schedule"
)

// Options is the resolved configuration for one run. Resolution (flags over
// config file over global git config) happens once, before Run; the
// pipeline never reads ambient state.
type Options struct {
	Source    string
	OutputDir string
	Identity  gitx.Identity
	Policy    schedule.Policy

	// PushURL enables the publish step; empty means rewrite only.
	PushURL string
	// Token authenticates the push and, when the destination is missing,
	// its creation.
	Token string
}

// Summary describes a completed (or, for publish failures, partially
// completed) run.
type Summary struct {
	Commits     int
	Branch      string
	Tip         string
	Pushed      bool
	Destination string
}

// Pipeline runs the rewrite. The zero value is not usable; construct with New.
type Pipeline struct {
	backend        Backend
	newProvisioner func(ctx context.Context, token string) Provisioner
}

// New returns a pipeline wired to the real go-git backend and GitHub
// provisioner.
func New() *Pipeline {
	return &Pipeline{
		backend: gitBackend{},
		newProvisioner: func(ctx context.Context, token string) Provisioner {
			return githubx.NewProvisioner(ctx, token)
		},
	}
}

// Run executes acquire, plan, rewrite, and the optional publish.
//
// When publishing fails, the local rewrite has already completed, so Run
// returns the summary of the rewritten repository alongside the
// PublishError; for all earlier failures the summary is nil.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	repo, err := p.backend.Acquire(ctx, opts.Source, opts.OutputDir)
	if err != nil {
		return nil, &AcquisitionError{Source: opts.Source, Err: err}
	}

	commits, err := repo.Commits(ctx)
	if err != nil {
		// History we cannot read means the clone is unusable.
		return nil, &AcquisitionError{Source: opts.Source, Err: err}
	}

	times := schedule.NewPlanner(opts.Policy).Plan(len(commits))
	steps := make([]gitx.RewriteStep, len(commits))
	for i, c := range commits {
		steps[i] = gitx.RewriteStep{Source: c, Author: opts.Identity, When: times[i]}
	}

	res, err := repo.Rewrite(ctx, steps)
	if err != nil {
		return nil, &RewriteError{Err: err}
	}

	sum := &Summary{Commits: res.Commits, Branch: res.Branch, Tip: res.NewTip}
	if opts.PushURL == "" {
		return sum, nil
	}

	if opts.Token != "" {
		if err := p.newProvisioner(ctx, opts.Token).Ensure(ctx, opts.PushURL); err != nil {
			return sum, &PublishError{Kind: PublishCreate, Destination: opts.PushURL, Err: err}
		}
	}

	if err := repo.Push(ctx, gitx.PushOptions{RemoteURL: opts.PushURL, Token: opts.Token}); err != nil {
		return sum, &PublishError{Kind: publishKind(err), Destination: opts.PushURL, Err: err}
	}

	sum.Pushed = true
	sum.Destination = opts.PushURL
	return sum, nil
}

func validate(opts Options) error {
	switch {
	case opts.Source == "":
		return &ConfigurationError{Reason: "source repository is required"}
	case opts.OutputDir == "":
		return &ConfigurationError{Reason: "output directory is required"}
	case opts.Identity.Name == "":
		return &ConfigurationError{Reason: "author name is required (use --name or set git config user.name)"}
	case opts.Identity.Email == "":
		return &ConfigurationError{Reason: "author email is required (use --email or set git config user.email)"}
	}
	return nil
}

func publishKind(err error) PublishKind {
	switch gitx.ClassifyPushFailure(err) {
	case gitx.PushFailureAuth:
		return PublishAuth
	case gitx.PushFailureRejected:
		return PublishRejected
	default:
		return PublishNetwork
	}
}
