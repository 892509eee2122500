package main

import (
	"time"

	"github.com/spf13/cobra"

	"coderecon/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline counts for the latest scan",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	e, err := newEnv(rootFlag)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.loadCurrent()
	if err != nil {
		return err
	}
	return printResponse(cmd, summary.Compute(a, time.Now()))
}
