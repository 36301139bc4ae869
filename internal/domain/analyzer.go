package domain

import (
	"context"
	"log/slog"

	"github.com/mouse-blink/snapscope/internal/adapter"
	m "github.com/mouse-blink/snapscope/internal/model"
)

// Exit codes the CI pipeline branches on.
const (
	// ExitClean: no failures, or every failure is in-scope.
	ExitClean = 0
	// ExitOutOfScope: at least one failure has no inferred connection to
	// the change set and needs human review.
	ExitOutOfScope = 1
	// ExitGlobalChange: a visual-surface-wide file was modified; the
	// in/out partition is unreliable and a full baseline regeneration
	// path should be taken. Supersedes ExitOutOfScope.
	ExitGlobalChange = 2
)

// Analyzer runs the full scope analysis: diff collection, global-change
// detection, pattern mapping, snapshot partitioning and confidence
// scoring.
type Analyzer struct {
	git     adapter.GitAdapter
	mapper  *PatternMapper
	project Project
}

// NewAnalyzer constructs an Analyzer backed by the provided git and
// filesystem adapters.
func NewAnalyzer(git adapter.GitAdapter, fs adapter.CatalogFSAdapter, project Project) *Analyzer {
	appRoot := fs.JoinPath(string(project.RepoRoot), project.AppPrefix)

	return &Analyzer{
		git:     git,
		mapper:  NewPatternMapper(fs, appRoot),
		project: project,
	}
}

// Analyze classifies the failing snapshots against the change set since
// baseRef. The reference is sanitized before any git invocation; an
// invalid reference is the only error this method returns. Diff
// failures degrade to an empty modified-file list so CI always gets a
// usable, conservative result.
func (a *Analyzer) Analyze(ctx context.Context, baseRef string, failures []m.FailedSnapshot) (m.ScopeAnalysisResult, error) {
	if err := SanitizeReference(baseRef); err != nil {
		return m.ScopeAnalysisResult{}, err
	}

	files := a.collectDiff(ctx, baseRef)
	globalChange := DetectGlobalChange(files)
	set := a.mapper.MapPatterns(files)

	inScope, outOfScope := Partition(failures, set.Patterns)
	confidence := ScoreConfidence(set.Confidence, globalChange, len(outOfScope), len(failures))

	return m.NewScopeAnalysisResult(inScope, outOfScope, confidence, files, set.Patterns, globalChange), nil
}

// collectDiff lists the files changed since baseRef, restricted to the
// analyzed subtree. Failures are logged and swallowed: a broken diff
// must degrade to "no inferred scope", never crash the pipeline.
func (a *Analyzer) collectDiff(ctx context.Context, baseRef string) []string {
	output, err := a.git.DiffNames(ctx, string(a.project.RepoRoot), baseRef)
	if err != nil {
		slog.Warn("diff collection failed, continuing with empty scope", "base", baseRef, "error", err)
		return []string{}
	}

	return splitDiffOutput(output, a.project.AppPrefix)
}

// ExitCode maps an analysis result to the process exit status.
func ExitCode(result m.ScopeAnalysisResult) int {
	if result.GlobalChangeDetected {
		return ExitGlobalChange
	}

	if result.Metadata.OutOfScopeCount > 0 {
		return ExitOutOfScope
	}

	return ExitClean
}
