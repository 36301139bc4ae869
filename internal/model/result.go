package model

// AnalysisMetadata summarizes the failure counts of one analysis run.
type AnalysisMetadata struct {
	TotalFailures     int     `json:"totalFailures"`
	InScopeCount      int     `json:"inScopeCount"`
	OutOfScopeCount   int     `json:"outOfScopeCount"`
	GlobalChangeRatio float64 `json:"globalChangeRatio"`
}

// ScopeAnalysisResult is the structured outcome of one analysis run.
// Every failing snapshot supplied to the analyzer appears in exactly
// one of InScope or OutOfScope.
type ScopeAnalysisResult struct {
	InScope               []FailedSnapshot `json:"inScope"`
	OutOfScope            []FailedSnapshot `json:"outOfScope"`
	Confidence            Confidence       `json:"confidence"`
	ModifiedFiles         []string         `json:"modifiedFiles"`
	AffectedStoryPatterns []StoryPattern   `json:"affectedStoryPatterns"`
	GlobalChangeDetected  bool             `json:"globalChangeDetected"`
	Metadata              AnalysisMetadata `json:"metadata"`
}

// NewScopeAnalysisResult assembles a ScopeAnalysisResult and derives the
// metadata counts from the classified lists, so the partition invariant
// (inScope + outOfScope == totalFailures) holds by construction.
func NewScopeAnalysisResult(
	inScope, outOfScope []FailedSnapshot,
	confidence Confidence,
	modifiedFiles []string,
	patterns []StoryPattern,
	globalChange bool,
) ScopeAnalysisResult {
	total := len(inScope) + len(outOfScope)

	ratio := 0.0
	if total > 0 {
		ratio = float64(len(outOfScope)) / float64(total)
	}

	return ScopeAnalysisResult{
		InScope:               emptyIfNil(inScope),
		OutOfScope:            emptyIfNil(outOfScope),
		Confidence:            confidence,
		ModifiedFiles:         emptyIfNil(modifiedFiles),
		AffectedStoryPatterns: emptyIfNil(patterns),
		GlobalChangeDetected:  globalChange,
		Metadata: AnalysisMetadata{
			TotalFailures:     total,
			InScopeCount:      len(inScope),
			OutOfScopeCount:   len(outOfScope),
			GlobalChangeRatio: ratio,
		},
	}
}

// UpdateMetadata summarizes the counts of one baseline update run.
type UpdateMetadata struct {
	TotalRequested int `json:"totalRequested"`
	SuccessCount   int `json:"successCount"`
	FailureCount   int `json:"failureCount"`
}

// FailedUpdate records one snapshot that could not be regenerated or
// did not validate, with the reason.
type FailedUpdate struct {
	Snapshot FailedSnapshot `json:"snapshot"`
	Reason   string         `json:"reason"`
}

// UpdateResult is the structured outcome of one selective baseline
// update run. Every requested snapshot appears either in UpdatedFiles
// (by its derived baseline path) or in FailedUpdates.
type UpdateResult struct {
	Success          bool           `json:"success"`
	UpdatedFiles     []Path         `json:"updatedFiles"`
	FailedUpdates    []FailedUpdate `json:"failedUpdates"`
	ValidationErrors []string       `json:"validationErrors"`
	Metadata         UpdateMetadata `json:"metadata"`
}

// NewUpdateResult assembles an UpdateResult. Success is true only when
// no requested snapshot failed; the counts are derived from the lists.
func NewUpdateResult(updated []Path, failed []FailedUpdate, validationErrors []string) UpdateResult {
	return UpdateResult{
		Success:          len(failed) == 0,
		UpdatedFiles:     emptyIfNil(updated),
		FailedUpdates:    emptyIfNil(failed),
		ValidationErrors: emptyIfNil(validationErrors),
		Metadata: UpdateMetadata{
			TotalRequested: len(updated) + len(failed),
			SuccessCount:   len(updated),
			FailureCount:   len(failed),
		},
	}
}

// emptyIfNil keeps JSON output stable: empty lists serialize as [] and
// never as null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
