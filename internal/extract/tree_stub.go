//go:build !cgo

package extract

import (
	"context"
	"errors"

	"coderecon/internal/model"
)

// ErrNoCGO is returned when tree parsing is not compiled in.
var ErrNoCGO = errors.New("tree extraction requires CGO")

// TreeExtractor always requests fallback when CGO is disabled.
type TreeExtractor struct{}

// NewTreeExtractor creates a stub extractor.
func NewTreeExtractor() *TreeExtractor {
	return &TreeExtractor{}
}

// Extract always returns ErrFallback.
func (e *TreeExtractor) Extract(_ context.Context, _ string, _ model.Language, _ []byte) ([]model.FunctionRecord, error) {
	return nil, fallback(ErrNoCGO)
}
