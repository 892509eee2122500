package main

import (
	"github.com/spf13/cobra"

	"coderecon/internal/version"
)

var (
	verbosity    int
	quiet        bool
	rootFlag     string
	stateDirFlag string
	formatFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "coderecon",
	Short: "coderecon - structural reconnaissance for source trees",
	Long: `coderecon scans a source tree, extracts functions, maps tests, flags
edge-case hazards and turns them into prioritized signals. Each scan is kept
as a snapshot so the next one can be diffed against it.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("coderecon version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Scanned source root")
	rootCmd.PersistentFlags().StringVar(&stateDirFlag, "state-dir", "", "Snapshot directory (default <root>/.coderecon)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", string(FormatHuman), "Output format (json, yaml, human)")
}
