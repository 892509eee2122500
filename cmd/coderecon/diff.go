package main

import (
	"github.com/spf13/cobra"

	"coderecon/internal/diff"
	reconerrors "coderecon/internal/errors"
)

var diffFingerprint string

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the latest scan with the previous one",
	Long: `Compare the signals of the latest scan with the scan before it.

Signals are matched by fingerprint. Policy v1 keys on (path, type, function);
v2 also keys on the edge case, so two hazards in one function are told apart.

Examples:
  coderecon diff
  coderecon diff --fingerprint v2 --format json`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffFingerprint, "fingerprint", "", "Fingerprint policy v1 or v2 (default from config)")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	e, err := newEnv(rootFlag)
	if err != nil {
		return err
	}
	defer e.Close()

	name := e.cfg.Diff.Fingerprint
	if diffFingerprint != "" {
		name = diffFingerprint
	}
	policy, err := diff.ParsePolicy(name)
	if err != nil {
		return reconerrors.New(reconerrors.ConfigInvalid, "invalid fingerprint policy", err)
	}

	result, err := diff.CompareStored(e.store, policy)
	if err != nil {
		return err
	}
	e.logger.Debug("diff computed", "status", result.Status, "added", result.AddedCount, "removed", result.RemovedCount)
	return printResponse(cmd, result)
}
