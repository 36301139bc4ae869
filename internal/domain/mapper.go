package domain

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mouse-blink/snapscope/internal/adapter"
	m "github.com/mouse-blink/snapscope/internal/model"
)

// PatternMapper infers, for each modified file, the catalog identifier
// pattern(s) it affects. File contents are read through the filesystem
// adapter; everything else is pure string work on paths and titles.
type PatternMapper struct {
	fs      adapter.CatalogFSAdapter
	appRoot m.Path
}

// NewPatternMapper constructs a PatternMapper. appRoot is the directory
// the modified-file paths are relative to.
func NewPatternMapper(fs adapter.CatalogFSAdapter, appRoot m.Path) *PatternMapper {
	return &PatternMapper{
		fs:      fs,
		appRoot: appRoot,
	}
}

// MapPatterns derives the de-duplicated pattern set for the modified
// files, along with a confidence seed. The seed starts at high and is
// capped to medium whenever a file could not be mapped reliably: a
// shared-directory touch, or a component file without a discoverable
// catalog entry sibling. Global-change files are scored separately by
// the confidence scorer.
func (pm *PatternMapper) MapPatterns(files []string) m.PatternSet {
	confidence := m.ConfidenceHigh
	seen := map[m.StoryPattern]bool{}
	patterns := []m.StoryPattern{}

	add := func(p m.StoryPattern) {
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	for _, file := range files {
		switch {
		case IsStoryFile(file):
			pattern, ok := pm.patternFromStoryFile(file)
			if !ok {
				confidence = confidence.Cap(m.ConfidenceMedium)
				continue
			}

			add(pattern)

		default:
			name, isComponent := ComponentName(file)
			if isComponent {
				pattern, ok := pm.patternFromSiblingStory(file, name)
				if !ok {
					// The mapper could not prove the component is even
					// covered by visual tests.
					confidence = confidence.Cap(m.ConfidenceMedium)
					continue
				}

				add(pattern)

				continue
			}

			if IsSharedPath(file) {
				// Shared code can affect catalog entries outside its own
				// directory; absence of a mapping is uncertainty, not
				// irrelevance.
				confidence = confidence.Cap(m.ConfidenceMedium)
			}
		}
	}

	sort.Slice(patterns, func(i, j int) bool { return patterns[i] < patterns[j] })

	return m.PatternSet{
		Patterns:   patterns,
		Confidence: confidence,
	}
}

// patternFromStoryFile reads a catalog entry declaration and converts
// its declared title into a pattern.
func (pm *PatternMapper) patternFromStoryFile(file string) (m.StoryPattern, bool) {
	path := pm.fs.JoinPath(string(pm.appRoot), file)

	content, err := pm.fs.ReadFile(path)
	if err != nil {
		slog.Warn("story file unreadable", "path", path, "error", err)
		return "", false
	}

	title, ok := ExtractStoryTitle(content)
	if !ok {
		slog.Warn("story file has no title declaration", "path", path)
		return "", false
	}

	return TitleToPattern(title), true
}

// patternFromSiblingStory locates the catalog entry declared next to a
// modified component implementation file and converts its title.
func (pm *PatternMapper) patternFromSiblingStory(file, componentName string) (m.StoryPattern, bool) {
	dir := filepath.Dir(file)

	for _, ext := range storyFileExtensions {
		sibling := pm.fs.JoinPath(string(pm.appRoot), dir, componentName+".stories"+ext)
		if !pm.fs.FileExists(sibling) {
			continue
		}

		content, err := pm.fs.ReadFile(sibling)
		if err != nil {
			slog.Warn("sibling story unreadable", "path", sibling, "error", err)
			continue
		}

		if title, ok := ExtractStoryTitle(content); ok {
			return TitleToPattern(title), true
		}
	}

	return "", false
}

// splitDiffOutput turns raw newline-delimited `git diff --name-only`
// output into the modified-file list for the analyzed subtree, with the
// subtree prefix stripped.
func splitDiffOutput(output, appPrefix string) []string {
	prefix := strings.TrimSuffix(filepath.ToSlash(appPrefix), "/")
	if prefix != "" {
		prefix += "/"
	}

	files := []string{}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if prefix != "" {
			if !strings.HasPrefix(line, prefix) {
				continue
			}

			line = strings.TrimPrefix(line, prefix)
		}

		files = append(files, line)
	}

	return files
}
