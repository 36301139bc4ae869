package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// SnapshotRunnerAdapter abstracts the snapshot test runner's
// "update baselines for this spec file only" invocation mode.
type SnapshotRunnerAdapter interface {
	// UpdateSnapshots invokes the runner in update mode for a single
	// spec file. Returns the combined stdout/stderr output and any error.
	UpdateSnapshots(ctx context.Context, workDir string, specFile m.Path) (output string, err error)
}

// LocalSnapshotRunnerAdapter provides a concrete implementation using
// os/exec. The runner command is configurable so the tool is not
// hard-wired to one test framework; the spec file path is appended as
// the final argument.
type LocalSnapshotRunnerAdapter struct {
	command []string
	timeout time.Duration
}

// DefaultRunnerTimeout bounds a single per-spec update invocation.
// Regenerating baselines re-renders every story in the spec, so this is
// deliberately generous.
const DefaultRunnerTimeout = 10 * time.Minute

// NewLocalSnapshotRunnerAdapter constructs a LocalSnapshotRunnerAdapter
// for the given runner command, e.g.
// ["npx", "jest", "--ci", "--updateSnapshot"].
func NewLocalSnapshotRunnerAdapter(command []string) *LocalSnapshotRunnerAdapter {
	return &LocalSnapshotRunnerAdapter{
		command: command,
		timeout: DefaultRunnerTimeout,
	}
}

// UpdateSnapshots runs the configured runner command against one spec file.
func (a *LocalSnapshotRunnerAdapter) UpdateSnapshots(ctx context.Context, workDir string, specFile m.Path) (string, error) {
	if len(a.command) == 0 {
		return "", errors.New("snapshot runner command is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := append(append([]string{}, a.command[1:]...), string(specFile))

	cmd := exec.CommandContext(ctx, a.command[0], args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()
	if err != nil {
		return output, fmt.Errorf("snapshot runner failed for %s: %w", specFile, err)
	}

	return output, nil
}
