package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mouse-blink/snapscope/internal/adapter"
	m "github.com/mouse-blink/snapscope/internal/model"
)

// fakeGitAdapter returns canned diff output.
type fakeGitAdapter struct {
	output  string
	failing bool
}

func (g *fakeGitAdapter) DiffNames(_ context.Context, _, _ string) (string, error) {
	if g.failing {
		return "", errors.New("fatal: not a git repository")
	}

	return g.output, nil
}

// fakeFSAdapter is an in-memory CatalogFSAdapter.
type fakeFSAdapter struct {
	files map[string][]byte
}

func (f *fakeFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	content, ok := f.files[string(path)]
	if !ok {
		return nil, os.ErrNotExist
	}

	return content, nil
}

func (f *fakeFSAdapter) FileExists(path m.Path) bool {
	_, ok := f.files[string(path)]
	return ok
}

func (f *fakeFSAdapter) FileSize(path m.Path) (int64, error) {
	content, ok := f.files[string(path)]
	if !ok {
		return 0, os.ErrNotExist
	}

	return int64(len(content)), nil
}

func (f *fakeFSAdapter) Walk(root m.Path, fn adapter.FilepathWalkFunc) error {
	paths := make([]string, 0, len(f.files))
	for path := range f.files {
		if strings.HasPrefix(path, string(root)+string(filepath.Separator)) || path == string(root) {
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)

	for _, path := range paths {
		info := fakeFileInfo{name: filepath.Base(path), size: int64(len(f.files[path]))}
		if err := fn(path, info, nil); err != nil {
			return err
		}
	}

	return nil
}

func (f *fakeFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

type fakeFileInfo struct {
	name string
	size int64
}

func (fi fakeFileInfo) Name() string       { return fi.name }
func (fi fakeFileInfo) Size() int64        { return fi.size }
func (fi fakeFileInfo) Mode() os.FileMode  { return 0o644 }
func (fi fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (fi fakeFileInfo) IsDir() bool        { return false }
func (fi fakeFileInfo) Sys() any           { return nil }

// fakeRunnerAdapter records invocations and lets a hook simulate the
// runner writing baseline files into the fake filesystem.
type fakeRunnerAdapter struct {
	onUpdate func(spec m.Path) error
	invoked  []m.Path
}

func (r *fakeRunnerAdapter) UpdateSnapshots(_ context.Context, _ string, spec m.Path) (string, error) {
	r.invoked = append(r.invoked, spec)

	if r.onUpdate != nil {
		if err := r.onUpdate(spec); err != nil {
			return "", err
		}
	}

	return "updated " + string(spec), nil
}

// fakeApprovalStore keeps approvals in memory keyed by path.
type fakeApprovalStore struct {
	saved map[m.Path][]m.FailedSnapshot
}

func newFakeApprovalStore() *fakeApprovalStore {
	return &fakeApprovalStore{saved: map[m.Path][]m.FailedSnapshot{}}
}

func (s *fakeApprovalStore) SaveApproved(path m.Path, snapshots []m.FailedSnapshot) error {
	s.saved[path] = snapshots
	return nil
}

func (s *fakeApprovalStore) LoadApproved(path m.Path) ([]m.FailedSnapshot, error) {
	approved, ok := s.saved[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	return approved, nil
}
