package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// GitAdapter abstracts the version-control query the analyzer relies
// on: listing files changed on the current branch since it diverged
// from a base reference.
type GitAdapter interface {
	// DiffNames runs a three-dot name-only diff (base...HEAD) in the
	// given working directory and returns the raw newline-delimited
	// file list.
	DiffNames(ctx context.Context, workDir, baseRef string) (output string, err error)
}

// LocalGitAdapter provides a concrete implementation using os/exec.
type LocalGitAdapter struct {
	timeout time.Duration
}

// NewLocalGitAdapter constructs a LocalGitAdapter with default 30s timeout.
func NewLocalGitAdapter() *LocalGitAdapter {
	return &LocalGitAdapter{
		timeout: 30 * time.Second,
	}
}

// DiffNames runs `git diff --name-only <base>...HEAD` in workDir.
// The base reference must already be sanitized by the caller.
func (a *LocalGitAdapter) DiffNames(ctx context.Context, workDir, baseRef string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", baseRef+"...HEAD")
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git diff failed: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
