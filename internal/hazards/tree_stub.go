//go:build !cgo

package hazards

import (
	"context"
	"log/slog"

	"coderecon/internal/config"
	"coderecon/internal/model"
)

// inspectFile needs tree-sitter; without cgo only the length rule runs.
func inspectFile(_ context.Context, _ string, _ []model.FunctionRecord, _ config.HazardConfig, _ *slog.Logger) []model.EdgeCaseFinding {
	return nil
}
