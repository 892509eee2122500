package main

import (
	"github.com/spf13/cobra"

	"coderecon/internal/topology"
)

var hotspotsLimit int

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "List the files carrying the most signals",
	Long: `List files ranked by signal count, with their bucket and fan-in/fan-out.

Examples:
  coderecon hotspots
  coderecon hotspots -n 25 --format json`,
	Args: cobra.NoArgs,
	RunE: runHotspots,
}

func init() {
	hotspotsCmd.Flags().IntVarP(&hotspotsLimit, "limit", "n", 10, "Maximum files to list")
	rootCmd.AddCommand(hotspotsCmd)
}

// HotspotsResponseCLI contains the ranked files for CLI output
type HotspotsResponseCLI struct {
	Hotspots   []topology.FileNode `json:"hotspots" yaml:"hotspots"`
	TotalFiles int                 `json:"total_files" yaml:"total_files"`
}

func runHotspots(cmd *cobra.Command, args []string) error {
	e, err := newEnv(rootFlag)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.loadCurrent()
	if err != nil {
		return err
	}

	t := buildTopology(e, a)
	return printResponse(cmd, &HotspotsResponseCLI{
		Hotspots:   t.Hotspots(hotspotsLimit),
		TotalFiles: len(t.Files),
	})
}
