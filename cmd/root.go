// Package cmd provides the root command and CLI setup for snapscope.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mouse-blink/snapscope/internal/adapter"
	"github.com/mouse-blink/snapscope/internal/controller"
	m "github.com/mouse-blink/snapscope/internal/model"
)

var gitAdapter adapter.GitAdapter
var fsAdapter adapter.CatalogFSAdapter
var runnerAdapter adapter.SnapshotRunnerAdapter
var approvalStore adapter.ApprovalStore
var ui controller.UI

// exitCode is set by command handlers and applied once by Execute.
// Analysis uses it to signal scope verdicts without aborting output.
var exitCode int

// verboseFlag switches the rolling log to debug level.
var verboseFlag bool

// logFileFlag overrides the log file location.
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	gitAdapter = adapter.NewLocalGitAdapter()
	fsAdapter = adapter.NewLocalCatalogFSAdapter()
	runnerAdapter = adapter.NewLocalSnapshotRunnerAdapter(viper.GetStringSlice(runnerCommandKey))
	approvalStore = adapter.NewYAMLApprovalStore()
}

const rootLongDescription = `Snapscope separates visual snapshot failures you caused from the ones
you did not. It maps the change set against a base git reference to the
story patterns it can affect, then classifies each failing snapshot as
in scope (expected from your change) or out of scope (a candidate
regression someone should look at).

Snapshot names are positional arguments or a newline-separated file:
  snapscope analyze app-grid-employeetile--default-light.png
  snapscope analyze --failures-file failures.txt`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapscope",
		Short: "Scope-aware visual snapshot triage",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file location")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func parseSnapshots(args []string) []m.FailedSnapshot {
	failures := make([]m.FailedSnapshot, 0, len(args))
	for _, arg := range args {
		failures = append(failures, m.FailedSnapshot(arg))
	}

	return failures
}
