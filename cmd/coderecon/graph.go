package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"coderecon/internal/topology"
)

var graphOutput string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Write the function call graph as Graphviz DOT",
	Long: `Write the function call graph of the latest snapshot in DOT format,
one cluster per file. Render it with Graphviz, e.g.

  coderecon graph -o calls.dot && dot -Tsvg calls.dot > calls.svg`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	e, err := newEnv(rootFlag)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.loadCurrent()
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if graphOutput != "" {
		f, err := os.Create(graphOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", graphOutput, err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := topology.WriteFunctionDOT(bw, e.root, a.Functions, a.Signals); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if graphOutput != "" {
		e.logger.Info("graph written", "path", graphOutput, "functions", len(a.Functions))
	}
	return nil
}
