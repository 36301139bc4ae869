package domain

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

// fakeFS is an in-memory CatalogFSAdapter so mapping and update logic
// can be exercised without touching the disk.
type fakeFS struct {
	files map[string][]byte
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string][]byte{}}
}

func (f *fakeFS) ReadFile(path m.Path) ([]byte, error) {
	content, ok := f.files[string(path)]
	if !ok {
		return nil, os.ErrNotExist
	}

	return content, nil
}

func (f *fakeFS) FileExists(path m.Path) bool {
	_, ok := f.files[string(path)]
	return ok
}

func (f *fakeFS) FileSize(path m.Path) (int64, error) {
	content, ok := f.files[string(path)]
	if !ok {
		return 0, os.ErrNotExist
	}

	return int64(len(content)), nil
}

func (f *fakeFS) Walk(root m.Path, fn adapter.FilepathWalkFunc) error {
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

func (f *fakeFS) JoinPath(elem ...string) m.Path {
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

// fakeGit returns canned diff output, or an error when failing is set.
type fakeGit struct {
	output  string
	failing bool
	calls   int
}

func (g *fakeGit) DiffNames(_ context.Context, _, _ string) (string, error) {
	g.calls++

	if g.failing {
		return "", errors.New("fatal: not a git repository")
	}

	return g.output, nil
}

// fakeRunner invokes a hook per spec file so tests can simulate the
// runner writing (or failing to write) baseline images.
type fakeRunner struct {
	onUpdate func(spec m.Path) error
	invoked  []m.Path
}

func (r *fakeRunner) UpdateSnapshots(_ context.Context, _ string, spec m.Path) (string, error) {
	r.invoked = append(r.invoked, spec)

	if r.onUpdate != nil {
		if err := r.onUpdate(spec); err != nil {
			return "", err
		}
	}

	return "updated " + string(spec), nil
}
