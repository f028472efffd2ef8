package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-astar/internal/platform/tui"
	"github.com/vovakirdan/snake-astar/internal/storage"
)

var flagClear bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded autopilot runs",
	Long: `Show the runs recorded by 'snake bench --record', newest first, with
the decision breakdown of the selected run.

Examples:
  snake runs
  snake runs --db ./trace.db
  snake runs --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(traceDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All runs deleted.")
		return nil
	}

	width, height := terminalSize()
	return tui.RunRunsViewer(store, width, height)
}
