// Package slice cuts an analysis down to one file or directory.
package slice

import (
	"path/filepath"

	"coderecon/internal/model"
	"coderecon/internal/paths"
	"coderecon/internal/snapshot"
)

// Kinds of slice target.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// Slice holds the signals and findings under one target.
type Slice struct {
	Target      string                   `json:"target" yaml:"target"`
	Kind        string                   `json:"kind" yaml:"kind"`
	FileCount   int                      `json:"file_count" yaml:"file_count"`
	SignalCount int                      `json:"signal_count" yaml:"signal_count"`
	Signals     []model.AggregatedSignal `json:"signals" yaml:"signals"`
	EdgeCases   []model.EdgeCaseFinding  `json:"edge_cases" yaml:"edge_cases"`
}

// ByFile returns the signals recorded for one file. A relative target is
// resolved against the analysis root.
func ByFile(a *snapshot.Analysis, target string) *Slice {
	target = resolve(a, target)
	return collect(a, target, KindFile, func(p string) bool {
		return filepath.Clean(p) == target
	})
}

// ByDirectory returns the signals recorded for files beneath dir.
func ByDirectory(a *snapshot.Analysis, dir string) *Slice {
	dir = resolve(a, dir)
	return collect(a, dir, KindDirectory, func(p string) bool {
		return p != model.Unknown && paths.IsUnder(p, dir) && filepath.Clean(p) != dir
	})
}

func collect(a *snapshot.Analysis, target, kind string, match func(string) bool) *Slice {
	s := &Slice{
		Target:    target,
		Kind:      kind,
		Signals:   []model.AggregatedSignal{},
		EdgeCases: []model.EdgeCaseFinding{},
	}
	files := make(map[string]bool)
	for _, sig := range a.Signals {
		if match(sig.Path) {
			s.Signals = append(s.Signals, sig)
			files[sig.Path] = true
		}
	}
	for _, ec := range a.EdgeCases {
		if match(ec.Path) {
			s.EdgeCases = append(s.EdgeCases, ec)
		}
	}
	s.FileCount = len(files)
	s.SignalCount = len(s.Signals)
	return s
}

func resolve(a *snapshot.Analysis, target string) string {
	if !filepath.IsAbs(target) && a.Root != "" {
		target = filepath.Join(a.Root, target)
	}
	return filepath.Clean(target)
}
