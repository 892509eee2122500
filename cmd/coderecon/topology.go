package main

import (
	"github.com/spf13/cobra"

	"coderecon/internal/snapshot"
	"coderecon/internal/topology"
)

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Show how files depend on each other and where risk sits",
	Long: `Build a file-level call graph from the latest snapshot, group files into
entry points, core, data, utilities, external integrations and others, and
print a risk heatmap.

Examples:
  coderecon topology
  coderecon topology --root ./service --format json`,
	Args: cobra.NoArgs,
	RunE: runTopology,
}

func init() {
	rootCmd.AddCommand(topologyCmd)
}

func runTopology(cmd *cobra.Command, args []string) error {
	e, err := newEnv(rootFlag)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.loadCurrent()
	if err != nil {
		return err
	}
	return printResponse(cmd, buildTopology(e, a))
}

// buildTopology derives the file topology of a.
func buildTopology(e *env, a *snapshot.Analysis) *topology.Topology {
	files := make([]string, len(a.Files))
	for i, f := range a.Files {
		files[i] = f.Path
	}
	return topology.Build(topology.Input{
		Root:      e.root,
		Files:     files,
		Functions: a.Functions,
		Signals:   a.Signals,
		Logger:    e.logger,
	}, e.cfg.Topology)
}
