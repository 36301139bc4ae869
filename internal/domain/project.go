package domain

import (
	m "github.com/mouse-blink/snapscope/internal/model"
)

// Project describes the repository layout the tool operates on. All
// fields have working defaults for a conventional Storybook +
// image-snapshot setup and can be overridden through configuration.
type Project struct {
	// RepoRoot is the version-controlled worktree the diff is taken in.
	RepoRoot m.Path

	// AppPrefix is the subtree under analysis, relative to RepoRoot.
	// Diff results are filtered to this prefix and reported without it.
	AppPrefix string

	// SpecRoot is the directory holding the visual test spec files,
	// relative to RepoRoot.
	SpecRoot string

	// SpecSuffixes are the filename suffixes that identify a spec file.
	SpecSuffixes []string

	// SnapshotDirName is the per-spec directory the runner writes
	// baseline images into, resolved next to the owning spec file.
	SnapshotDirName string

	// MinSnapshotBytes is the smallest size a regenerated baseline may
	// have and still be considered valid.
	MinSnapshotBytes int64
}

// DefaultProject returns the conventional layout: sources under src/,
// specs next to them, jest-image-snapshot style baseline directories.
func DefaultProject(repoRoot m.Path) Project {
	return Project{
		RepoRoot:         repoRoot,
		AppPrefix:        "src",
		SpecRoot:         "src",
		SpecSuffixes:     []string{".spec.tsx", ".spec.ts", ".spec.jsx", ".spec.js"},
		SnapshotDirName:  "__image_snapshots__",
		MinSnapshotBytes: 100,
	}
}
