// Package snapshot defines the analysis document and its on-disk store.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"coderecon/internal/discovery"
	"coderecon/internal/model"
	"coderecon/internal/signals"
)

// SchemaVersion is the current version of the analysis format.
const SchemaVersion = 1

// Analysis is the document a scan produces and later stages consume.
type Analysis struct {
	SchemaVersion  int                       `json:"schema_version" yaml:"schema_version"`
	ScanID         string                    `json:"scan_id" yaml:"scan_id"`
	Root           string                    `json:"root" yaml:"root"`
	GeneratedAt    time.Time                 `json:"generated_at" yaml:"generated_at"`
	Digest         string                    `json:"digest" yaml:"digest"`
	Files          []model.FileRecord        `json:"files" yaml:"files"`
	Functions      []model.FunctionRecord    `json:"functions" yaml:"functions"`
	Tests          []model.TestRecord        `json:"tests" yaml:"tests"`
	EdgeCases      []model.EdgeCaseFinding   `json:"edge_cases" yaml:"edge_cases"`
	Signals        []model.AggregatedSignal  `json:"signals" yaml:"signals"`
	SignalsRaw     []model.Signal            `json:"signals_raw" yaml:"signals_raw"`
	TechStack      []discovery.LanguageCount `json:"tech_stack" yaml:"tech_stack"`
	TestRatio      float64                   `json:"test_ratio" yaml:"test_ratio"`
	SeverityCounts map[model.Severity]int    `json:"severity_counts" yaml:"severity_counts"`
}

// New assembles an analysis and fills in the derived fields.
func New(root string, files []model.FileRecord, functions []model.FunctionRecord, tests []model.TestRecord,
	edgeCases []model.EdgeCaseFinding, raw []model.Signal, aggregated []model.AggregatedSignal) *Analysis {
	a := &Analysis{
		SchemaVersion: SchemaVersion,
		ScanID:        uuid.New().String(),
		Root:          root,
		GeneratedAt:   time.Now().UTC(),
		Files:         nonNil(files),
		Functions:     nonNil(functions),
		Tests:         nonNil(tests),
		EdgeCases:     nonNil(edgeCases),
		Signals:       nonNil(aggregated),
		SignalsRaw:    nonNil(raw),
		TechStack:     discovery.TechStack(files),
	}
	if len(a.Functions) > 0 {
		a.TestRatio = float64(len(a.Tests)) / float64(len(a.Functions))
	}
	a.SeverityCounts = signals.SeverityCounts(a.Signals)
	a.Digest = ComputeDigest(a.Signals)
	return a
}

// ComputeDigest hashes the aggregated signals. Two scans with the same
// signals share a digest regardless of scan id or time.
func ComputeDigest(agg []model.AggregatedSignal) string {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	for i := range agg {
		_ = enc.Encode(&agg[i])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Unchanged reports whether a and other carry the same signals.
func (a *Analysis) Unchanged(other *Analysis) bool {
	return a != nil && other != nil && a.Digest == other.Digest
}

// normalize fills nil slices left by older or hand-written documents.
func (a *Analysis) normalize() {
	a.Files = nonNil(a.Files)
	a.Functions = nonNil(a.Functions)
	a.Tests = nonNil(a.Tests)
	a.EdgeCases = nonNil(a.EdgeCases)
	a.Signals = nonNil(a.Signals)
	a.SignalsRaw = nonNil(a.SignalsRaw)
	if a.SeverityCounts == nil {
		a.SeverityCounts = signals.SeverityCounts(a.Signals)
	}
	for i := range a.Signals {
		if a.Signals[i].Path == "" {
			a.Signals[i].Path = model.Unknown
		}
		if a.Signals[i].Function == "" {
			a.Signals[i].Function = model.Unknown
		}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
