package domain

import (
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// storyTitlePattern extracts the hierarchical title from a catalog
// entry declaration, covering both CSF object form
// (`export default { title: 'App/Grid/Tile' }`) and typed meta form
// (`const meta = { title: "App/Grid/Tile" }`).
var storyTitlePattern = regexp.MustCompile(`title\s*:\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)

// componentNamePattern matches the basename of a component
// implementation file: a capitalized identifier.
var componentNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// storyFileExtensions are probed, in order, when looking for the
// sibling catalog entry of a modified component file.
var storyFileExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

// sharedDirNames are path segments that indicate shared/common code,
// which can affect catalog entries outside its own directory.
var sharedDirNames = map[string]bool{
	"shared": true,
	"common": true,
	"utils":  true,
	"hooks":  true,
}

// TitleToPattern converts a hierarchical story title such as
// "App/Grid/EmployeeTile" into the snapshot name pattern
// "app-grid-employeetile--*". Segments are lower-cased and path
// separators become hyphens.
func TitleToPattern(title string) m.StoryPattern {
	segments := strings.Split(title, "/")

	normalized := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		normalized = append(normalized, strings.ToLower(segment))
	}

	return m.StoryPattern(strings.Join(normalized, "-") + "--*")
}

// ExtractStoryTitle pulls the declared hierarchical title out of a
// catalog entry file. Returns false when no title declaration is found.
func ExtractStoryTitle(content []byte) (string, bool) {
	match := storyTitlePattern.FindSubmatch(content)
	if match == nil {
		return "", false
	}

	title := strings.TrimSpace(string(match[1]))
	if title == "" {
		return "", false
	}

	return title, true
}

// IsStoryFile reports whether the path names a catalog entry
// declaration (e.g. EmployeeTile.stories.tsx).
func IsStoryFile(path string) bool {
	return strings.Contains(filepath.Base(path), ".stories.")
}

// ComponentName returns the capitalized identifier of a component
// implementation file, or false when the file does not follow the
// component naming convention (lowercase files, test files and story
// files all return false).
func ComponentName(path string) (string, bool) {
	base := filepath.Base(path)

	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") || strings.Contains(base, ".stories.") {
		return "", false
	}

	name := strings.TrimSuffix(base, filepath.Ext(base))
	if !componentNamePattern.MatchString(name) {
		return "", false
	}

	return name, true
}

// IsSharedPath reports whether the path lies under a shared/common
// directory.
func IsSharedPath(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if sharedDirNames[segment] {
			return true
		}
	}

	return false
}
