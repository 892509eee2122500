package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	reconerrors "coderecon/internal/errors"
	"coderecon/internal/slice"
)

var sliceDir bool

var sliceCmd = &cobra.Command{
	Use:   "slice <file|dir>",
	Short: "Show the signals for one file or directory",
	Long: `Show the signals and edge cases recorded for a single file, or for every
file beneath a directory. Relative targets are resolved against --root.

Examples:
  coderecon slice src/app.py
  coderecon slice src/handlers --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSlice,
}

func init() {
	sliceCmd.Flags().BoolVar(&sliceDir, "dir", false, "Treat the target as a directory even if it no longer exists")
	rootCmd.AddCommand(sliceCmd)
}

func runSlice(cmd *cobra.Command, args []string) error {
	e, err := newEnv(rootFlag)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.loadCurrent()
	if err != nil {
		return err
	}

	target := args[0]
	if !filepath.IsAbs(target) {
		target = filepath.Join(e.root, target)
	}

	info, statErr := os.Stat(target)
	var s *slice.Slice
	if sliceDir || (statErr == nil && info.IsDir()) {
		s = slice.ByDirectory(a, target)
	} else {
		s = slice.ByFile(a, target)
	}

	if statErr != nil && s.SignalCount == 0 && len(s.EdgeCases) == 0 {
		return reconerrors.New(reconerrors.TargetNotFound, fmt.Sprintf("no such file or directory: %s", args[0]), statErr)
	}
	return printResponse(cmd, s)
}
