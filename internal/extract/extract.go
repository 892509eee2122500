// Package extract turns source files into function records, preferring a
// syntax tree and falling back to pattern matching.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"coderecon/internal/config"
	"coderecon/internal/model"
	"coderecon/internal/slogutil"
	"coderecon/internal/syntax"
)

// ErrFallback asks the caller to retry with the pattern extractor.
var ErrFallback = errors.New("extractor requested fallback")

// Extractor extracts function records from one file's source.
type Extractor interface {
	Extract(ctx context.Context, path string, lang model.Language, source []byte) ([]model.FunctionRecord, error)
}

// Dispatcher picks an extractor per file and applies the fallback policy.
type Dispatcher struct {
	tree        Extractor
	pattern     Extractor
	patternOnly bool
	logger      *slog.Logger
}

// NewDispatcher creates a dispatcher with the tree and pattern extractors.
func NewDispatcher(cfg config.ExtractConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		tree:        NewTreeExtractor(),
		pattern:     NewPatternExtractor(),
		patternOnly: cfg.PatternOnly || !syntax.Available(),
		logger:      slogutil.OrDiscard(logger),
	}
}

// ExtractFile reads rec and extracts its functions. Unreadable files and
// files without a known language yield an empty list.
func (d *Dispatcher) ExtractFile(ctx context.Context, rec model.FileRecord) ([]model.FunctionRecord, error) {
	lang, ok := model.LanguageFromExtension(rec.Extension)
	if !ok || lang.IsMarkup() {
		return []model.FunctionRecord{}, nil
	}

	source, err := os.ReadFile(rec.Path)
	if err != nil {
		d.logger.Debug("skipping unreadable file", "path", rec.Path, "error", err)
		return []model.FunctionRecord{}, nil
	}
	return d.ExtractSource(ctx, rec.Path, lang, source)
}

// ExtractSource extracts functions from in-memory source.
func (d *Dispatcher) ExtractSource(ctx context.Context, path string, lang model.Language, source []byte) ([]model.FunctionRecord, error) {
	if !d.patternOnly && syntax.Supported(lang) {
		fns, err := d.tree.Extract(ctx, path, lang, source)
		if err == nil {
			return fns, nil
		}
		if !errors.Is(err, ErrFallback) {
			return nil, err
		}
		d.logger.Debug("falling back to pattern extraction", "path", path, "reason", err)
	}
	return d.pattern.Extract(ctx, path, lang, source)
}

func fallback(reason error) error {
	return fmt.Errorf("%w: %v", ErrFallback, reason)
}
