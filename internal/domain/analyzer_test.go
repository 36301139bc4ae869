package domain

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/snapscope/internal/model"
)

func newTestAnalyzer(git *fakeGit, files map[string]string) *Analyzer {
	fs := newFakeFS()
	for path, content := range files {
		fs.files[filepath.Join("repo", "src", path)] = []byte(content)
	}

	return NewAnalyzer(git, fs, DefaultProject("repo"))
}

// Modified component with a catalog sibling: its failures are in scope,
// an unrelated component's failure is not.
func TestAnalyze_ScopedComponentChange(t *testing.T) {
	git := &fakeGit{output: "src/grid/EmployeeTile.tsx\n"}
	analyzer := newTestAnalyzer(git, map[string]string{
		"grid/EmployeeTile.tsx":         "export const EmployeeTile = () => null;",
		"grid/EmployeeTile.stories.tsx": employeeTileStory,
	})

	failures := []m.FailedSnapshot{
		"app-grid-employeetile--default-light.png",
		"app-grid-employeetile--hover-dark.png",
		"app-dashboard-chart--default-light.png",
	}

	result, err := analyzer.Analyze(context.Background(), "main", failures)
	require.NoError(t, err)

	assert.Equal(t, failures[:2], result.InScope)
	assert.Equal(t, failures[2:], result.OutOfScope)
	assert.Equal(t, []string{"grid/EmployeeTile.tsx"}, result.ModifiedFiles)
	assert.Equal(t, []m.StoryPattern{"app-grid-employeetile--*"}, result.AffectedStoryPatterns)
	assert.False(t, result.GlobalChangeDetected)
	assert.Equal(t, ExitOutOfScope, ExitCode(result))
}

// A design-token change flags a global change and forces low
// confidence, regardless of what failed.
func TestAnalyze_GlobalChange(t *testing.T) {
	git := &fakeGit{output: "src/design/tokens/colors.ts\n"}
	analyzer := newTestAnalyzer(git, nil)

	result, err := analyzer.Analyze(context.Background(), "main", []m.FailedSnapshot{
		"app-grid-employeetile--default-light.png",
	})
	require.NoError(t, err)

	assert.True(t, result.GlobalChangeDetected)
	assert.Equal(t, m.ConfidenceLow, result.Confidence)
	assert.Equal(t, ExitGlobalChange, ExitCode(result))
}

// An injection attempt fails sanitization before any git invocation.
func TestAnalyze_InvalidReferenceNeverReachesGit(t *testing.T) {
	git := &fakeGit{}
	analyzer := newTestAnalyzer(git, nil)

	_, err := analyzer.Analyze(context.Background(), "main; rm -rf /", nil)

	require.Error(t, err)
	assert.IsType(t, &m.InvalidReferenceError{}, err)
	assert.Zero(t, git.calls, "git must not be invoked for an invalid reference")
}

func TestAnalyze_DiffFailureDegradesToEmptyScope(t *testing.T) {
	git := &fakeGit{failing: true}
	analyzer := newTestAnalyzer(git, nil)

	failures := []m.FailedSnapshot{"app-grid-employeetile--default-light.png"}

	result, err := analyzer.Analyze(context.Background(), "main", failures)
	require.NoError(t, err)

	assert.Empty(t, result.ModifiedFiles)
	assert.Empty(t, result.InScope)
	assert.Equal(t, failures, result.OutOfScope)
	assert.Equal(t, ExitOutOfScope, ExitCode(result))
}

func TestAnalyze_NoFailures(t *testing.T) {
	git := &fakeGit{output: ""}
	analyzer := newTestAnalyzer(git, nil)

	result, err := analyzer.Analyze(context.Background(), "main", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Metadata.TotalFailures)
	assert.Equal(t, 0.0, result.Metadata.GlobalChangeRatio)
	assert.Equal(t, ExitClean, ExitCode(result))
}

// Two identical runs must serialize to byte-identical JSON.
func TestAnalyze_DeterministicOutput(t *testing.T) {
	failures := []m.FailedSnapshot{
		"app-grid-employeetile--default-light.png",
		"app-dashboard-chart--default-light.png",
	}
	files := map[string]string{
		"grid/EmployeeTile.stories.tsx": employeeTileStory,
		"chart/Chart.stories.tsx":       `export default { title: 'App/Dashboard/Chart' };`,
	}
	diff := "src/grid/EmployeeTile.stories.tsx\nsrc/chart/Chart.stories.tsx\n"

	first, err := newTestAnalyzer(&fakeGit{output: diff}, files).Analyze(context.Background(), "main", failures)
	require.NoError(t, err)

	second, err := newTestAnalyzer(&fakeGit{output: diff}, files).Analyze(context.Background(), "main", failures)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestExitCode_GlobalChangeSupersedesOutOfScope(t *testing.T) {
	result := m.NewScopeAnalysisResult(
		nil,
		[]m.FailedSnapshot{"a--x-light.png"},
		m.ConfidenceLow,
		[]string{"design/tokens/colors.ts"},
		nil,
		true,
	)

	assert.Equal(t, ExitGlobalChange, ExitCode(result))
}
