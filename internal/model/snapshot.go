package model

// Path represents a file system path.
type Path string

// FailedSnapshot is the filename of one failing visual comparison,
// e.g. "app-grid-employeetile--default-light.png".
type FailedSnapshot string

// StoryPattern is a catalog identifier pattern of the form
// "segment-segment-...-leaf--*", derived from a story title such as
// "App/Grid/EmployeeTile".
type StoryPattern string

// Confidence indicates how much a scope classification should be
// trusted before acting on it automatically.
type Confidence string

// Available Confidence values, from most to least trusted.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// rank orders confidence values so they can be compared; lower rank
// means less trusted.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceLow:
		return 0
	case ConfidenceMedium:
		return 1
	case ConfidenceHigh:
		return 2
	}

	return 0
}

// Cap returns the lower of the two confidence values. Folding per-file
// signals through Cap implements the precedence order
// global > mapping-uncertainty > default without shared mutable state.
func (c Confidence) Cap(limit Confidence) Confidence {
	if limit.rank() < c.rank() {
		return limit
	}

	return c
}

// PatternSet is the de-duplicated collection of story patterns inferred
// for one run, plus the confidence seed reflecting how reliably the
// modified files were mapped.
type PatternSet struct {
	Patterns   []StoryPattern
	Confidence Confidence
}
