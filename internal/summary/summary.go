// Package summary condenses an analysis into headline counts.
package summary

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"coderecon/internal/discovery"
	"coderecon/internal/model"
	"coderecon/internal/signals"
	"coderecon/internal/snapshot"
)

// Summary is the headline view of one scan.
type Summary struct {
	ScanID         string                    `json:"scan_id" yaml:"scan_id"`
	Root           string                    `json:"root" yaml:"root"`
	Age            string                    `json:"age" yaml:"age"`
	Files          int                       `json:"files" yaml:"files"`
	Functions      int                       `json:"functions" yaml:"functions"`
	Tests          int                       `json:"tests" yaml:"tests"`
	TestRatio      float64                   `json:"test_ratio" yaml:"test_ratio"`
	SignalTypes    map[string]int            `json:"signal_types" yaml:"signal_types"`
	SeverityCounts map[model.Severity]int    `json:"severity_counts" yaml:"severity_counts"`
	TechStack      []discovery.LanguageCount `json:"tech_stack" yaml:"tech_stack"`
}

// Compute builds a summary of a.
func Compute(a *snapshot.Analysis, now time.Time) *Summary {
	return &Summary{
		ScanID:         a.ScanID,
		Root:           a.Root,
		Age:            a.Age(now),
		Files:          len(a.Files),
		Functions:      len(a.Functions),
		Tests:          len(a.Tests),
		TestRatio:      math.Round(a.TestRatio*1000) / 1000,
		SignalTypes:    signals.TypeCounts(a.Signals),
		SeverityCounts: signals.SeverityCounts(a.Signals),
		TechStack:      a.TechStack,
	}
}

// Render writes the summary as plain text.
func (s *Summary) Render(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("=== Coderecon Summary ===\n")
	fmt.Fprintf(&sb, "Files: %d\n", s.Files)
	fmt.Fprintf(&sb, "Functions: %d\n", s.Functions)
	fmt.Fprintf(&sb, "Tests: %d\n", s.Tests)
	fmt.Fprintf(&sb, "Test Ratio: %g\n", s.TestRatio)

	if len(s.TechStack) > 0 {
		langs := make([]string, len(s.TechStack))
		for i, l := range s.TechStack {
			langs[i] = fmt.Sprintf("%s (%d)", l.Language, l.Files)
		}
		fmt.Fprintf(&sb, "Tech Stack: %s\n", strings.Join(langs, ", "))
	}

	sb.WriteString("\nSignal Distribution:\n")
	types := make([]string, 0, len(s.SignalTypes))
	for k := range s.SignalTypes {
		types = append(types, k)
	}
	sort.Strings(types)
	for _, k := range types {
		fmt.Fprintf(&sb, "  %s: %d\n", k, s.SignalTypes[k])
	}

	sb.WriteString("\nSeverity Distribution:\n")
	for _, sev := range []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		fmt.Fprintf(&sb, "  %s: %d\n", sev, s.SeverityCounts[sev])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
