package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/snapscope/internal/domain"
	m "github.com/mouse-blink/snapscope/internal/model"
)

var updateApprovedFileFlag string
var updateFailuresFileFlag string
var updateSummaryFlag bool

const updateLongDescription = `Regenerate baseline images for the given snapshots only.

Snapshots are grouped by owning spec file and the snapshot runner is
invoked once per spec. Every regenerated baseline is validated (the
file must exist, meet the minimum size and carry a PNG signature)
before the run is reported as successful.

Snapshot names come from positional arguments, a failures file, or an
approved list produced by the review command.

The result is written to stdout as JSON. Exit code 0 means every
requested baseline was regenerated and validated; 1 otherwise.`

// updateCmd represents the update command.
var updateCmd = newUpdateCmd()

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [snapshots...]",
		Short: "Selectively regenerate snapshot baselines",
		Long:  updateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := collectFailures(args, updateFailuresFileFlag)
			if err != nil {
				return err
			}

			if updateApprovedFileFlag != "" {
				approved, err := approvalStore.LoadApproved(m.Path(updateApprovedFileFlag))
				if err != nil {
					return err
				}

				request = append(request, approved...)
			}

			updater := domain.NewBaselineUpdater(fsAdapter, runnerAdapter, projectFromConfig())
			result := updater.Update(cmd.Context(), request)

			if err := writeJSON(cmd, result); err != nil {
				return err
			}

			if updateSummaryFlag {
				if err := ui.DisplayUpdateSummary(result); err != nil {
					return err
				}
			}

			if !result.Success {
				exitCode = 1
			}

			return nil
		},
	}

	configureUpdateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func configureUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&updateApprovedFileFlag, approvedFileFlagName, "a", "", "approved list written by the review command")
	cmd.Flags().StringVarP(&updateFailuresFileFlag, failuresFileFlagName, "f", "", "file with one snapshot name per line")
	cmd.Flags().BoolVar(&updateSummaryFlag, summaryFlagName, false, "print a human-readable summary table to stderr")
}
