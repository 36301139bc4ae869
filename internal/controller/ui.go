// Package controller provides output surfaces for analysis and update
// results. The JSON report always goes to stdout; everything here
// renders to stderr or an interactive terminal so the machine-readable
// stream stays clean.
package controller

import (
	"os"

	"golang.org/x/term"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// UI displays human-readable summaries of triage runs. Implementations
// can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayAnalysisSummary(result m.ScopeAnalysisResult) error
	DisplayUpdateSummary(result m.UpdateResult) error
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
