package domain

import (
	"regexp"
	"strings"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// themeSuffixes are the per-theme variants a snapshot name can carry
// before its extension.
var themeSuffixes = []string{"-light", "-dark"}

// StripSnapshotName removes the extension and any trailing theme suffix
// from a failing snapshot filename:
// "app-grid-tile--default-light.png" -> "app-grid-tile--default".
func StripSnapshotName(name m.FailedSnapshot) string {
	stripped := string(name)

	if idx := strings.LastIndex(stripped, "."); idx > 0 {
		stripped = stripped[:idx]
	}

	for _, suffix := range themeSuffixes {
		if strings.HasSuffix(stripped, suffix) {
			stripped = strings.TrimSuffix(stripped, suffix)
			break
		}
	}

	return stripped
}

// patternPrefix strips the trailing "--*" wildcard from a pattern.
func patternPrefix(pattern m.StoryPattern) string {
	return strings.TrimSuffix(string(pattern), "--*")
}

// MatchesPattern decides whether a stripped snapshot name belongs to a
// pattern, using layered strategies with decreasing strictness. Naive
// substring matching is avoided throughout: a short leaf like "tile"
// must not match inside "employeetile".
func MatchesPattern(stripped string, pattern m.StoryPattern) bool {
	prefix := patternPrefix(pattern)
	if prefix == "" {
		return false
	}

	// Exact-prefix match.
	if strings.HasPrefix(stripped, prefix) {
		return true
	}

	// Anchored-regex match, guarding against prefix collisions when
	// segments are reordered.
	anchored := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `--.*$`)
	if anchored.MatchString(stripped) {
		return true
	}

	// Delimited leaf-name fallback. Only applied to leaves longer than
	// three characters so short generic words cannot cause false
	// positives, and the leaf must sit on hyphen/underscore or string
	// boundaries rather than anywhere in the name.
	leaf := prefix
	if idx := strings.LastIndex(prefix, "-"); idx >= 0 {
		leaf = prefix[idx+1:]
	}

	if len(leaf) > 3 {
		bounded := regexp.MustCompile(`(^|[-_])` + regexp.QuoteMeta(leaf) + `([-_]|$)`)
		if bounded.MatchString(stripped) {
			return true
		}
	}

	return false
}

// Partition classifies every failing snapshot as in-scope or
// out-of-scope against the pattern set. Each snapshot lands in exactly
// one of the two lists; with no patterns everything is out-of-scope.
func Partition(failures []m.FailedSnapshot, patterns []m.StoryPattern) (inScope, outOfScope []m.FailedSnapshot) {
	inScope = []m.FailedSnapshot{}
	outOfScope = []m.FailedSnapshot{}

	for _, failure := range failures {
		stripped := StripSnapshotName(failure)

		matched := false
		for _, pattern := range patterns {
			if MatchesPattern(stripped, pattern) {
				matched = true
				break
			}
		}

		if matched {
			inScope = append(inScope, failure)
		} else {
			outOfScope = append(outOfScope, failure)
		}
	}

	return inScope, outOfScope
}
