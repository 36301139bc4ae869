package domain

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// globalChangePatterns is a fixed allowlist of paths whose modification
// affects the entire visual surface: design tokens, theme definitions,
// global stylesheet entry points, catalog tooling configuration, shared
// test-harness helpers and application bootstrap files. Files not on
// this list are treated as component-local even when a newly introduced
// file has global blast radius; extending the list is the only
// remediation for that false-negative class.
var globalChangePatterns = []string{
	"**/tokens/**",
	"**/*.tokens.*",
	"**/theme/**",
	"**/themes/**",
	"**/*.theme.*",
	"**/styles/global.*",
	"**/global.{css,scss,less}",
	"**/index.{css,scss,less}",
	".storybook/**",
	"**/.storybook/**",
	"**/test-utils/**",
	"**/testUtils.*",
	"**/jest.setup.*",
	"**/setupTests.*",
	"**/playwright.config.*",
	"App.{tsx,jsx,ts,js,vue,svelte}",
	"main.{tsx,jsx,ts,js}",
	"index.{tsx,jsx,ts,js}",
}

// IsGlobalFile reports whether a single modified file is on the
// global-change allowlist.
func IsGlobalFile(path string) bool {
	normalized := filepath.ToSlash(path)

	for _, pattern := range globalChangePatterns {
		// Patterns are fixed and known-valid; Match only errors on bad
		// patterns, so the error is ignored.
		if ok, _ := doublestar.Match(pattern, normalized); ok {
			return true
		}
	}

	return false
}

// DetectGlobalChange reports whether any modified file has
// visual-surface-wide blast radius.
func DetectGlobalChange(files []string) bool {
	for _, file := range files {
		if IsGlobalFile(file) {
			return true
		}
	}

	return false
}
