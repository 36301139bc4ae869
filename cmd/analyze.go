package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/snapscope/internal/domain"
	m "github.com/mouse-blink/snapscope/internal/model"
)

var analyzeBaseFlag string
var analyzeFailuresFileFlag string
var analyzeSummaryFlag bool

const analyzeLongDescription = `Classify failing visual snapshots as in scope or out of scope for the
current change set.

The change set is the diff between the base reference and HEAD. Each
modified file is mapped to the story patterns it can affect; failing
snapshots matching an affected pattern are in scope, the rest are
candidates for a real regression.

The result is written to stdout as JSON. Exit codes:
  0  all failures are in scope
  1  at least one failure is out of scope
  2  a global change was detected (all failures suspect)`

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [snapshots...]",
		Short: "Classify failing snapshots by change scope",
		Long:  analyzeLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			failures, err := collectFailures(args, analyzeFailuresFileFlag)
			if err != nil {
				return err
			}

			analyzer := domain.NewAnalyzer(gitAdapter, fsAdapter, projectFromConfig())

			result, err := analyzer.Analyze(cmd.Context(), viper.GetString(baseConfigKey), failures)
			if err != nil {
				return err
			}

			if err := writeJSON(cmd, result); err != nil {
				return err
			}

			if analyzeSummaryFlag {
				if err := ui.DisplayAnalysisSummary(result); err != nil {
					return err
				}
			}

			exitCode = domain.ExitCode(result)

			return nil
		},
	}

	configureAnalyzeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func configureAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&analyzeBaseFlag, baseFlagName, "b", viper.GetString(baseConfigKey), "base git reference to diff against")
	bindFlagToConfig(cmd.Flags().Lookup(baseFlagName), baseConfigKey)
	cmd.Flags().StringVarP(&analyzeFailuresFileFlag, failuresFileFlagName, "f", "", "file with one failing snapshot name per line")
	cmd.Flags().BoolVar(&analyzeSummaryFlag, summaryFlagName, false, "print a human-readable summary table to stderr")
}

// collectFailures merges positional snapshot names with the optional
// newline-separated failures file.
func collectFailures(args []string, failuresFile string) ([]m.FailedSnapshot, error) {
	failures := parseSnapshots(args)

	if failuresFile == "" {
		return failures, nil
	}

	content, err := os.ReadFile(failuresFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read failures file: %w", err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		failures = append(failures, m.FailedSnapshot(line))
	}

	return failures, nil
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	return nil
}
