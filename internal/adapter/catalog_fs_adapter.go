// Package adapter contains process and infrastructure adapters for the
// snapscope CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// CatalogFSAdapter abstracts the filesystem operations the domain layer
// relies on when reading catalog entry declarations, locating spec
// files and validating regenerated baseline images. It hides direct
// `os` access so the mapping and update logic can be tested against
// fakes without touching the disk.
type CatalogFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileExists reports whether a regular file exists at path.
	FileExists(path m.Path) bool

	// FileSize returns the size in bytes of the file at path.
	FileSize(path m.Path) (int64, error)

	// Walk traverses the provided root path recursively.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It
// is defined here to avoid leaking the standard-library type directly
// into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalCatalogFSAdapter is the concrete implementation backed by the
// local filesystem.
type LocalCatalogFSAdapter struct{}

// NewLocalCatalogFSAdapter constructs a LocalCatalogFSAdapter ready to
// be wired into the analyzer and updater.
func NewLocalCatalogFSAdapter() *LocalCatalogFSAdapter {
	return &LocalCatalogFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalCatalogFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileExists reports whether a regular file exists at path.
func (a *LocalCatalogFSAdapter) FileExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// FileSize returns the size in bytes of the file at path.
func (a *LocalCatalogFSAdapter) FileSize(path m.Path) (int64, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

// Walk iterates over files under root, descending into subdirectories.
func (a *LocalCatalogFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// JoinPath joins path elements into a single path.
func (a *LocalCatalogFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
