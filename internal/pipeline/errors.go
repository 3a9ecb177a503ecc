package pipeline

import "fmt"

// Every pipeline failure is one of the four error kinds below. Each wraps
// its cause and names the step that failed; nothing is retried or swallowed.

// ConfigurationError reports a required setting with no value from flags,
// config file, or global git configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// AcquisitionError reports a failure to obtain a complete local clone.
type AcquisitionError struct {
	Source string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Source, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// RewriteError reports a commit that could not be replayed. The original
// branch is left untouched when this is returned.
type RewriteError struct {
	Err error
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite history: %v", e.Err)
}

func (e *RewriteError) Unwrap() error { return e.Err }

// PublishKind distinguishes the ways publishing can fail.
type PublishKind int

const (
	PublishNetwork PublishKind = iota
	PublishAuth
	PublishCreate
	PublishRejected
)

// String returns a string representation of the publish failure kind.
func (k PublishKind) String() string {
	switch k {
	case PublishAuth:
		return "authentication failed"
	case PublishCreate:
		return "remote creation failed"
	case PublishRejected:
		return "push rejected"
	default:
		return "network failure"
	}
}

// PublishError reports a failure after the local rewrite completed; the
// rewritten working copy stays intact on disk.
type PublishError struct {
	Kind        PublishKind
	Destination string
	Err         error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish to %s: %s: %v", e.Destination, e.Kind, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
