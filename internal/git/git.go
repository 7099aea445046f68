// Package git wraps the git CLI operations the publisher needs. All
// operations run against an explicit directory so callers never depend
// on the process working directory.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// CloneBranch shallow-clones a single branch of remoteURL into dir.
func CloneBranch(remoteURL, branch, dir string) error {
	cmd := exec.Command("git", "clone", "--depth", "1", "--branch", branch, "--single-branch", remoteURL, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to clone %s: %s: %w", branch, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// SetUser sets the repo-local commit author.
func SetUser(dir, name, email string) error {
	for _, kv := range [][2]string{{"user.name", name}, {"user.email", email}} {
		cmd := exec.Command("git", "config", kv[0], kv[1])
		cmd.Dir = dir
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
	}
	return nil
}

// AddAll stages every change in the working tree.
func AddAll(dir string) error {
	cmd := exec.Command("git", "add", "-A")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func HasStagedChanges(dir string) (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("failed to check git status: %w", err)
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// Commit creates a commit with the given message.
func Commit(dir, message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to commit: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Push pushes the branch to origin.
func Push(dir, branch string) error {
	cmd := exec.Command("git", "push", "origin", branch)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to push %s: %s: %w", branch, strings.TrimSpace(string(output)), err)
	}
	return nil
}
