// Package testutil provides helpers for tests that need real directories,
// fake interpreters, or real git remotes.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable shell script and returns its path.
// Used to stand in for the diagram interpreter in tests.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// TempRemote is a bare git repository with one seed commit on its branch,
// usable as a clone/push target for publish tests.
type TempRemote struct {
	Path   string
	Branch string
	T      *testing.T
}

// NewTempRemote creates a bare repository seeded with an initial commit.
func NewTempRemote(t *testing.T) *TempRemote {
	t.Helper()

	branch := "main"
	bare := t.TempDir()
	if err := gitRun(bare, "init", "--bare", "--initial-branch", branch); err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}

	// Seed the branch through a throwaway working clone.
	work := t.TempDir()
	if err := gitRun("", "clone", bare, work); err != nil {
		t.Fatalf("failed to clone bare repo: %v", err)
	}

	configCmds := [][]string{
		{"config", "user.name", "Test User"},
		{"config", "user.email", "test@example.com"},
	}
	for _, args := range configCmds {
		if err := gitRun(work, args...); err != nil {
			t.Fatalf("failed to configure git: %v", err)
		}
	}

	readme := filepath.Join(work, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Remote\n"), 0644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	if err := gitRun(work, "add", "."); err != nil {
		t.Fatalf("failed to stage seed file: %v", err)
	}
	if err := gitRun(work, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to create seed commit: %v", err)
	}
	if err := gitRun(work, "push", "origin", "HEAD:"+branch); err != nil {
		t.Fatalf("failed to push seed commit: %v", err)
	}

	return &TempRemote{Path: bare, Branch: branch, T: t}
}

// FileContent reads a file from the remote's branch tip.
func (r *TempRemote) FileContent(path string) string {
	r.T.Helper()

	cmd := exec.Command("git", "show", r.Branch+":"+path)
	cmd.Dir = r.Path
	output, err := cmd.Output()
	if err != nil {
		r.T.Fatalf("failed to read %s from remote: %v", path, err)
	}
	return string(output)
}

// CommitCount returns the number of commits on the remote's branch.
func (r *TempRemote) CommitCount() int {
	r.T.Helper()

	cmd := exec.Command("git", "rev-list", "--count", r.Branch)
	cmd.Dir = r.Path
	output, err := cmd.Output()
	if err != nil {
		r.T.Fatalf("failed to count commits: %v", err)
	}

	n := 0
	for _, c := range output {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
		}
	}
	return n
}

func gitRun(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	return cmd.Run()
}
