package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	reconerrors "coderecon/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// printError writes err and, for coded errors, the suggested fixes.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var re *reconerrors.ReconError
	if errors.As(err, &re) && len(re.SuggestedFixes) > 0 {
		fmt.Fprintln(w, "Suggested fixes:")
		for _, fix := range re.SuggestedFixes {
			fmt.Fprintf(w, "  - %s\n", fix.Description)
			if fix.Command != "" {
				fmt.Fprintf(w, "    $ %s\n", fix.Command)
			}
		}
	}
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}
