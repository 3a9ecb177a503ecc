package git

import "time"

// CommitInfo is a read-only snapshot of a source commit's metadata.
type CommitInfo struct {
	SHA     string
	Tree    string
	Author  Identity
	When    time.Time
	Message string
}

// Identity is the (name, email) pair attributed as a commit's author.
type Identity struct {
	Name  string
	Email string
}

// IsComplete reports whether both identity fields are set.
func (id Identity) IsComplete() bool {
	return id.Name != "" && id.Email != ""
}

// String formats the identity the way git does: "Name <email>".
func (id Identity) String() string {
	return id.Name + " <" + id.Email + ">"
}

// RewriteStep pairs a source commit with the replacement author and
// timestamp it will carry in the rewritten history. Steps are ordered
// oldest first, matching the source history.
type RewriteStep struct {
	Source CommitInfo
	Author Identity
	When   time.Time
}

// RewriteResult describes a completed rewrite.
type RewriteResult struct {
	Branch  string
	NewTip  string
	Commits int
}

// PushOptions configures publishing the rewritten history.
type PushOptions struct {
	RemoteURL string
	Token     string // access token for HTTP basic auth; empty means unauthenticated
}

// PushFailure classifies why a push could not complete.
type PushFailure int

const (
	PushFailureNetwork PushFailure = iota
	PushFailureAuth
	PushFailureRejected
)

// String returns a string representation of the push failure kind.
func (f PushFailure) String() string {
	switch f {
	case PushFailureAuth:
		return "authentication"
	case PushFailureRejected:
		return "rejected"
	default:
		return "network"
	}
}
