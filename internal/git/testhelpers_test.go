package git

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// initDiskRepo creates a temporary on-disk repository.
func initDiskRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return dir, repo
}

// initMemRepo creates an in-memory repository backed by memfs.
func initMemRepo(t *testing.T) *gogit.Repository {
	t.Helper()
	repo, err := gogit.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("init in-memory repo: %v", err)
	}
	return repo
}

// addCommit writes a file and commits it with the given author and time.
// It goes through the worktree's billy filesystem so it works for both
// disk and in-memory repositories.
func addCommit(t *testing.T, repo *gogit.Repository, filename, content, message string, author Identity, when time.Time) string {
	t.Helper()

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}

	f, err := w.Filesystem.Create(filename)
	if err != nil {
		t.Fatalf("create %s: %v", filename, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", filename, err)
	}

	if _, err := w.Add(filename); err != nil {
		t.Fatalf("add %s: %v", filename, err)
	}

	sig := &object.Signature{Name: author.Name, Email: author.Email, When: when}
	hash, err := w.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("commit %q: %v", message, err)
	}
	return hash.String()
}

// stepsFor builds rewrite steps for the given commits, one planned
// timestamp per commit.
func stepsFor(commits []CommitInfo, author Identity, times []time.Time) []RewriteStep {
	steps := make([]RewriteStep, len(commits))
	for i, c := range commits {
		steps[i] = RewriteStep{Source: c, Author: author, When: times[i]}
	}
	return steps
}
