package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/snapscope/internal/model"
)

// SimpleUI implements UI by printing tables to the command's stderr.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayAnalysisSummary prints the scope partition and the run
// metadata as a table.
func (s *SimpleUI) DisplayAnalysisSummary(result m.ScopeAnalysisResult) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Snapshot", "Scope"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, snapshot := range result.InScope {
		table.Append([]string{string(snapshot), "in"})
	}

	for _, snapshot := range result.OutOfScope {
		table.Append([]string{string(snapshot), "OUT"})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", result.Metadata.TotalFailures),
		fmt.Sprintf("out %d", result.Metadata.OutOfScopeCount),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())
	s.printf("confidence: %s\n", result.Confidence)

	if result.GlobalChangeDetected {
		s.printf("global change detected: every failure is suspect\n")
	}

	return nil
}

// DisplayUpdateSummary prints the per-snapshot update outcome as a table.
func (s *SimpleUI) DisplayUpdateSummary(result m.UpdateResult) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Baseline", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, path := range result.UpdatedFiles {
		table.Append([]string{string(path), "updated"})
	}

	for _, failure := range result.FailedUpdates {
		table.Append([]string{string(failure.Snapshot), "FAILED: " + failure.Reason})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Requested %d", result.Metadata.TotalRequested),
		fmt.Sprintf("failed %d", result.Metadata.FailureCount),
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
