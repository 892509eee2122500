// Package scan runs the analysis pipeline over a source tree.
package scan

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"coderecon/internal/config"
	"coderecon/internal/discovery"
	"coderecon/internal/extract"
	"coderecon/internal/hazards"
	"coderecon/internal/model"
	"coderecon/internal/signals"
	"coderecon/internal/slogutil"
	"coderecon/internal/snapshot"
	"coderecon/internal/testmap"
)

const maxWorkers = 8

// Scanner runs discovery, extraction, test mapping, hazard detection and
// signal generation, producing one analysis per run.
type Scanner struct {
	cfg        *config.Config
	dispatcher *extract.Dispatcher
	logger     *slog.Logger
}

// New creates a scanner. A nil cfg uses the defaults.
func New(cfg *config.Config, logger *slog.Logger) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger = slogutil.OrDiscard(logger)
	return &Scanner{
		cfg:        cfg,
		dispatcher: extract.NewDispatcher(cfg.Extract, logger),
		logger:     logger,
	}
}

// Run analyses root. Only an unreadable root or cancellation fails a scan;
// per-file problems are logged and skipped.
func (s *Scanner) Run(ctx context.Context, root string) (*snapshot.Analysis, error) {
	start := time.Now()
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	files, err := discovery.Discover(abs, s.cfg.Discovery, s.logger)
	if err != nil {
		return nil, err
	}
	s.logger.Info("discovered files", "root", abs, "files", len(files))

	functions, err := s.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}
	s.logger.Info("extracted functions", "functions", len(functions))

	tests, err := testmap.Map(ctx, abs, files, s.cfg.Tests, newFunctionIndex(functions), s.logger)
	if err != nil {
		return nil, err
	}

	findings, err := hazards.Detect(ctx, functions, s.cfg.Hazards, s.logger)
	if err != nil {
		return nil, err
	}

	raw := signals.Generate(functions, findings, tests, s.cfg.Signals)
	aggregated := signals.Aggregate(raw)

	a := snapshot.New(abs, files, functions, tests, findings, raw, aggregated)
	s.logger.Info("scan complete",
		"tests", len(tests),
		"edge_cases", len(findings),
		"signals", len(aggregated),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return a, nil
}

// Workers returns the extraction pool size.
func (s *Scanner) Workers() int {
	if s.cfg.Extract.Workers > 0 {
		return s.cfg.Extract.Workers
	}
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}

// extractAll extracts every file on a bounded pool. Each batch fills its own
// slot, so results concatenate in file order without locking.
func (s *Scanner) extractAll(ctx context.Context, files []model.FileRecord) ([]model.FunctionRecord, error) {
	batches := Batches(files, s.cfg.Extract.BatchSize)
	results := make([][]model.FunctionRecord, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers())
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			var out []model.FunctionRecord
			for _, f := range batch {
				if err := gctx.Err(); err != nil {
					return err
				}
				fns, err := s.dispatcher.ExtractFile(gctx, f)
				if err != nil {
					return err
				}
				out = append(out, fns...)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	functions := []model.FunctionRecord{}
	for _, r := range results {
		functions = append(functions, r...)
	}
	return functions, nil
}

// Batches splits files into consecutive groups of at most size.
func Batches(files []model.FileRecord, size int) [][]model.FileRecord {
	if size <= 0 {
		size = 32
	}
	var out [][]model.FileRecord
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		out = append(out, files[start:end])
	}
	return out
}

// functionIndex serves already extracted functions to the test mapper.
type functionIndex map[string][]model.FunctionRecord

func newFunctionIndex(functions []model.FunctionRecord) functionIndex {
	idx := make(functionIndex)
	for _, fn := range functions {
		idx[fn.Path] = append(idx[fn.Path], fn)
	}
	return idx
}

func (idx functionIndex) ExtractFile(_ context.Context, rec model.FileRecord) ([]model.FunctionRecord, error) {
	return idx[rec.Path], nil
}
