package domain

import (
	m "github.com/mouse-blink/snapscope/internal/model"
)

// outOfScopeRatioLimit and outOfScopeCountLimit together decide when a
// run has too many unexplained failures to trust the classification. A
// high ratio alone is not enough: one stray failure out of two should
// not raise the same alarm as ten out of fifteen.
const (
	outOfScopeRatioLimit = 0.5
	outOfScopeCountLimit = 5
)

// ScoreConfidence folds the mapper's confidence seed together with the
// global-change flag and the out-of-scope proportion into the final
// confidence level. A detected global change always forces low.
func ScoreConfidence(seed m.Confidence, globalChange bool, outOfScopeCount, totalFailures int) m.Confidence {
	if globalChange {
		return m.ConfidenceLow
	}

	if totalFailures > 0 {
		ratio := float64(outOfScopeCount) / float64(totalFailures)
		if ratio > outOfScopeRatioLimit && outOfScopeCount > outOfScopeCountLimit {
			return m.ConfidenceLow
		}
	}

	return seed
}
