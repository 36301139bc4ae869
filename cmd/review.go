package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/snapscope/internal/controller"
	m "github.com/mouse-blink/snapscope/internal/model"
)

var reviewResultFileFlag string
var reviewOutFileFlag string

const reviewLongDescription = `Interactively review an analysis result and pick the snapshots whose
baselines should be regenerated.

In-scope snapshots start approved; out-of-scope ones start unapproved
so a candidate regression is never updated by accident. The approved
list is written as YAML for the update command:

  snapscope analyze --failures-file failures.txt > result.json
  snapscope review --result result.json --out approved.yaml
  snapscope update --approved-file approved.yaml`

// reviewCmd represents the review command.
var reviewCmd = newReviewCmd()

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively approve snapshots for baseline updates",
		Long:  reviewLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !controller.IsTTY(os.Stderr) {
				return errors.New("review requires an interactive terminal")
			}

			result, err := readAnalysisResult(reviewResultFileFlag)
			if err != nil {
				return err
			}

			tui := controller.NewReviewTUI(os.Stderr)

			approved, err := tui.Review(result)
			if err != nil {
				if errors.Is(err, controller.ErrReviewAborted) {
					cmd.PrintErrln("review aborted, nothing written")
					exitCode = 1

					return nil
				}

				return err
			}

			if err := approvalStore.SaveApproved(m.Path(reviewOutFileFlag), approved); err != nil {
				return err
			}

			cmd.PrintErrf("approved %d snapshot(s), written to %s\n", len(approved), reviewOutFileFlag)

			return nil
		},
	}

	configureReviewFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func configureReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reviewResultFileFlag, resultFileFlagName, "r", "", "analysis result JSON produced by the analyze command")
	cmd.Flags().StringVarP(&reviewOutFileFlag, outFileFlagName, "o", "approved.yaml", "where to write the approved list")
	cobra.CheckErr(cmd.MarkFlagRequired(resultFileFlagName))
}

func readAnalysisResult(path string) (m.ScopeAnalysisResult, error) {
	var result m.ScopeAnalysisResult

	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read analysis result: %w", err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to decode analysis result: %w", err)
	}

	return result, nil
}
