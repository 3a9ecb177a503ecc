// Package github provisions destination repositories before a push.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v35/github"
	"golang.org/x/oauth2"
)

// Provisioner ensures a destination repository exists, creating it when the
// access token grants repository creation.
type Provisioner struct {
	client *github.Client
}

// NewProvisioner builds an authenticated client from an access token.
func NewProvisioner(ctx context.Context, token string) *Provisioner {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Provisioner{client: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// Ensure checks the repository named by remoteURL and creates it (private)
// when it does not exist yet. Freshly created repositories are not
// immediately visible, so Ensure waits for the new repository to appear
// before returning.
func (p *Provisioner) Ensure(ctx context.Context, remoteURL string) error {
	owner, name, err := SplitRemoteURL(remoteURL)
	if err != nil {
		return err
	}

	_, resp, err := p.client.Repositories.Get(ctx, owner, name)
	if err == nil {
		return nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("look up %s/%s: %w", owner, name, err)
	}

	// Creating under the authenticated user requires an empty org argument.
	org := owner
	if user, _, uerr := p.client.Users.Get(ctx, ""); uerr == nil && user.GetLogin() == owner {
		org = ""
	}

	created, _, err := p.client.Repositories.Create(ctx, org, &github.Repository{
		Name:    github.String(name),
		Private: github.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("create %s/%s: %w", owner, name, err)
	}

	return p.waitVisible(ctx, created.GetID())
}

// waitVisible polls the created repository with exponential backoff until
// it can be fetched, bounded at ten attempts.
func (p *Provisioner) waitVisible(ctx context.Context, id int64) error {
	delay := time.Second
	var err error
	for i := 0; i < 10; i++ {
		if _, _, err = p.client.Repositories.GetByID(ctx, id); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("created repository not visible yet: %w", err)
}

// SplitRemoteURL extracts the owner and repository name from an HTTPS or
// scp-style SSH remote URL.
func SplitRemoteURL(remote string) (owner, name string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(remote), ".git")

	if strings.HasPrefix(s, "git@") {
		// git@host:owner/name
		_, after, ok := strings.Cut(s, ":")
		if !ok {
			return "", "", fmt.Errorf("remote URL %q: missing path", remote)
		}
		s = after
	} else {
		u, perr := url.Parse(s)
		if perr != nil {
			return "", "", fmt.Errorf("remote URL %q: %w", remote, perr)
		}
		s = strings.Trim(u.Path, "/")
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("remote URL %q: expected owner/name", remote)
	}
	return parts[0], parts[1], nil
}
