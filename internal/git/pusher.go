package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// pushRemote is the remote name used for the publish destination. It is
// distinct from "origin" so the source remote stays intact.
const pushRemote = "destination"

// Push publishes the rewritten branches and tags to the destination remote,
// creating or updating the remote config first. The token, when present, is
// sent as HTTP basic auth.
func (r *Repository) Push(ctx context.Context, opts PushOptions) error {
	// Re-running against the same working copy may leave a stale remote.
	if _, err := r.repo.Remote(pushRemote); err == nil {
		if err := r.repo.DeleteRemote(pushRemote); err != nil {
			return fmt.Errorf("reset %s remote: %w", pushRemote, err)
		}
	}
	if _, err := r.repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: pushRemote,
		URLs: []string{opts.RemoteURL},
	}); err != nil {
		return fmt.Errorf("configure %s remote: %w", pushRemote, err)
	}

	var auth transport.AuthMethod
	if opts.Token != "" {
		auth = &githttp.BasicAuth{Username: "git", Password: opts.Token}
	}

	err := r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: pushRemote,
		RefSpecs: []gitcfg.RefSpec{
			"refs/heads/*:refs/heads/*",
			"refs/tags/*:refs/tags/*",
		},
		Auth: auth,
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

// ClassifyPushFailure maps a push error onto the publish failure taxonomy.
func ClassifyPushFailure(err error) PushFailure {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod):
		return PushFailureAuth
	case errors.Is(err, gogit.ErrNonFastForwardUpdate):
		return PushFailureRejected
	default:
		return PushFailureNetwork
	}
}
