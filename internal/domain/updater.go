package domain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mouse-blink/snapscope/internal/adapter"
	m "github.com/mouse-blink/snapscope/internal/model"
)

// pngSignature is the fixed 8-byte header every valid PNG begins with.
var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// LookupTier records which strategy resolved a snapshot to its owning
// spec file.
type LookupTier int

// Lookup tiers, in the order they are attempted.
const (
	// LookupNone: no owning spec file was found.
	LookupNone LookupTier = iota
	// LookupDirect: a spec file named after the snapshot's leading
	// segments exists.
	LookupDirect
	// LookupScan: the linear fallback scan found a spec file whose
	// contents reference the snapshot name.
	LookupScan
)

// BaselineUpdater regenerates and validates only the approved baseline
// images. Snapshots are grouped by owning spec file so the runner's
// update mode is invoked once per spec, not once per snapshot.
type BaselineUpdater struct {
	fs      adapter.CatalogFSAdapter
	runner  adapter.SnapshotRunnerAdapter
	project Project
}

// NewBaselineUpdater constructs a BaselineUpdater backed by the
// provided filesystem and runner adapters.
func NewBaselineUpdater(fs adapter.CatalogFSAdapter, runner adapter.SnapshotRunnerAdapter, project Project) *BaselineUpdater {
	return &BaselineUpdater{
		fs:      fs,
		runner:  runner,
		project: project,
	}
}

// Update regenerates the baselines for the requested snapshots. Every
// requested snapshot ends up either in UpdatedFiles (by its derived
// baseline path) or in FailedUpdates with a reason; a runner failure
// for one spec group never aborts the remaining groups.
func (u *BaselineUpdater) Update(ctx context.Context, request []m.FailedSnapshot) m.UpdateResult {
	updated := []m.Path{}
	failed := []m.FailedUpdate{}
	validationErrors := []string{}

	groups, unresolved := u.groupBySpec(request)

	for _, snapshot := range unresolved {
		failed = append(failed, m.FailedUpdate{
			Snapshot: snapshot,
			Reason:   "no owning spec file found",
		})
		validationErrors = append(validationErrors, fmt.Sprintf("%s: no owning spec file found", snapshot))
	}

	specs := make([]m.Path, 0, len(groups))
	for spec := range groups {
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i] < specs[j] })

	for _, spec := range specs {
		snapshots := groups[spec]

		output, err := u.runner.UpdateSnapshots(ctx, string(u.project.RepoRoot), spec)
		if err != nil {
			slog.Warn("snapshot runner invocation failed", "spec", spec, "error", err)

			for _, snapshot := range snapshots {
				failed = append(failed, m.FailedUpdate{
					Snapshot: snapshot,
					Reason:   err.Error(),
				})
			}

			continue
		}

		slog.Debug("snapshot runner completed", "spec", spec, "outputBytes", len(output))

		// Batch success does not guarantee every individual file is
		// valid; each requested snapshot is checked on its own.
		for _, snapshot := range snapshots {
			baseline := u.baselinePath(spec, snapshot)

			if reason, ok := u.validateImage(baseline); !ok {
				failed = append(failed, m.FailedUpdate{
					Snapshot: snapshot,
					Reason:   reason,
				})
				validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", snapshot, reason))

				continue
			}

			updated = append(updated, baseline)
		}
	}

	return m.NewUpdateResult(updated, failed, validationErrors)
}

// groupBySpec resolves every requested snapshot to its owning spec file
// and groups the requests per spec. Snapshots without an owning spec
// are returned separately.
func (u *BaselineUpdater) groupBySpec(request []m.FailedSnapshot) (map[m.Path][]m.FailedSnapshot, []m.FailedSnapshot) {
	groups := map[m.Path][]m.FailedSnapshot{}
	unresolved := []m.FailedSnapshot{}

	for _, snapshot := range request {
		spec, tier := u.FindOwningSpec(snapshot)
		if tier == LookupNone {
			unresolved = append(unresolved, snapshot)
			continue
		}

		groups[spec] = append(groups[spec], snapshot)
	}

	return groups, unresolved
}

// FindOwningSpec locates the spec file responsible for a snapshot and
// reports which lookup tier resolved it. The direct tier probes spec
// files named after the snapshot's first one or two hyphen-delimited
// segments; the fallback tier linearly scans every spec file for one
// whose contents reference the base snapshot name.
func (u *BaselineUpdater) FindOwningSpec(snapshot m.FailedSnapshot) (m.Path, LookupTier) {
	base := StripSnapshotName(snapshot)

	if spec, ok := u.findSpecDirect(base); ok {
		return spec, LookupDirect
	}

	if spec, ok := u.findSpecByScan(base); ok {
		return spec, LookupScan
	}

	return "", LookupNone
}

// findSpecDirect probes for spec files named after the snapshot's
// leading segments, most specific first.
func (u *BaselineUpdater) findSpecDirect(base string) (m.Path, bool) {
	segments := strings.Split(base, "-")

	candidates := []string{}
	if len(segments) >= 2 {
		candidates = append(candidates, segments[0]+"-"+segments[1])
	}

	candidates = append(candidates, segments[0])

	specRoot := u.fs.JoinPath(string(u.project.RepoRoot), u.project.SpecRoot)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		for _, suffix := range u.project.SpecSuffixes {
			path := u.fs.JoinPath(string(specRoot), candidate+suffix)
			if u.fs.FileExists(path) {
				return path, true
			}
		}
	}

	return "", false
}

// findSpecByScan walks every spec file under the spec root and returns
// the first one whose contents mention the base snapshot name.
func (u *BaselineUpdater) findSpecByScan(base string) (m.Path, bool) {
	specs := u.listSpecFiles()
	needle := []byte(base)

	for _, spec := range specs {
		content, err := u.fs.ReadFile(spec)
		if err != nil {
			slog.Warn("spec file unreadable during scan", "path", spec, "error", err)
			continue
		}

		if bytes.Contains(content, needle) {
			return spec, true
		}
	}

	return "", false
}

// listSpecFiles collects all spec files under the spec root in sorted
// order so the fallback scan is deterministic.
func (u *BaselineUpdater) listSpecFiles() []m.Path {
	root := u.fs.JoinPath(string(u.project.RepoRoot), u.project.SpecRoot)
	specs := []m.Path{}

	err := u.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("spec walk error", "path", path, "error", err)
			return nil
		}

		if info.IsDir() {
			return nil
		}

		for _, suffix := range u.project.SpecSuffixes {
			if strings.HasSuffix(path, suffix) {
				specs = append(specs, m.Path(path))
				break
			}
		}

		return nil
	})
	if err != nil {
		slog.Warn("spec walk failed", "root", root, "error", err)
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i] < specs[j] })

	return specs
}

// baselinePath derives the predictable location the runner writes a
// snapshot's baseline image to: the snapshot directory next to the
// owning spec file.
func (u *BaselineUpdater) baselinePath(spec m.Path, snapshot m.FailedSnapshot) m.Path {
	return u.fs.JoinPath(filepath.Dir(string(spec)), u.project.SnapshotDirName, string(snapshot))
}

// validateImage checks that a regenerated baseline exists, is at least
// the minimum size and carries the PNG signature. Returns the failure
// reason when invalid.
func (u *BaselineUpdater) validateImage(path m.Path) (string, bool) {
	if !u.fs.FileExists(path) {
		return "baseline image missing after update", false
	}

	size, err := u.fs.FileSize(path)
	if err != nil {
		return fmt.Sprintf("baseline image unreadable: %v", err), false
	}

	if size < u.project.MinSnapshotBytes {
		return fmt.Sprintf("baseline image too small (%d bytes, minimum %d)", size, u.project.MinSnapshotBytes), false
	}

	content, err := u.fs.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("baseline image unreadable: %v", err), false
	}

	if !bytes.HasPrefix(content, pngSignature) {
		return "baseline image is not a valid PNG", false
	}

	return "", true
}
