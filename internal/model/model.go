// Package model holds the record types that flow through a coderecon scan.
package model

import "strings"

// Severity ranks a finding or signal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities; unknown values rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity accepts any casing and falls back to low.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Extraction strategies.
const (
	StrategyTree    = "tree"
	StrategyPattern = "pattern"
)

// Unknown is used when a record is missing a name or path.
const Unknown = "unknown"

// FileRecord is a discovered source file.
type FileRecord struct {
	Path      string `json:"path" yaml:"path"`
	Extension string `json:"extension" yaml:"extension"`
	LOC       int    `json:"loc" yaml:"loc"`
}

// FunctionRecord describes one extracted function.
// Pattern-extracted records have LineEnd and Length of zero.
type FunctionRecord struct {
	Name                string   `json:"name" yaml:"name"`
	Path                string   `json:"path" yaml:"path"`
	LineStart           int      `json:"line_start" yaml:"line_start"`
	LineEnd             int      `json:"line_end" yaml:"line_end"`
	Length              int      `json:"length" yaml:"length"`
	Params              []string `json:"params" yaml:"params"`
	CalledFunctionNames []string `json:"called_function_names" yaml:"called_function_names"`
	Language            string   `json:"language,omitempty" yaml:"language,omitempty"`
	Strategy            string   `json:"strategy" yaml:"strategy"`
}

// TestRecord is a test function and the names it references.
type TestRecord struct {
	TestName                string   `json:"test_name" yaml:"test_name"`
	Path                    string   `json:"path" yaml:"path"`
	ReferencedFunctionNames []string `json:"referenced_function_names" yaml:"referenced_function_names"`
}

// EdgeCaseFinding is a hazard observed inside a function body.
type EdgeCaseFinding struct {
	RuleID   string   `json:"rule_id" yaml:"rule_id"`
	Function string   `json:"function" yaml:"function"`
	Path     string   `json:"path" yaml:"path"`
	Case     string   `json:"case" yaml:"case"`
	Reason   string   `json:"reason" yaml:"reason"`
	Severity Severity `json:"severity" yaml:"severity"`
	Line     int      `json:"line" yaml:"line"`
	NodeKind string   `json:"node_kind" yaml:"node_kind"`
}

// Signal types.
const (
	SignalLargeFunction     = "large_function"
	SignalUntestedFunction  = "untested_function"
	SignalPotentialEdgeCase = "potential_edge_case"
)

// Signal is one raw risk observation.
type Signal struct {
	Type            string   `json:"type" yaml:"type"`
	Function        string   `json:"function" yaml:"function"`
	Path            string   `json:"path" yaml:"path"`
	Line            int      `json:"line" yaml:"line"`
	Severity        Severity `json:"severity" yaml:"severity"`
	Length          int      `json:"length,omitempty" yaml:"length,omitempty"`
	Case            string   `json:"case,omitempty" yaml:"case,omitempty"`
	RuleID          string   `json:"rule_id,omitempty" yaml:"rule_id,omitempty"`
	NodeKind        string   `json:"node_kind,omitempty" yaml:"node_kind,omitempty"`
	FindingSeverity Severity `json:"finding_severity,omitempty" yaml:"finding_severity,omitempty"`
}

// AggregatedSignal merges raw signals sharing (type, path, function, case).
type AggregatedSignal struct {
	Type     string   `json:"type" yaml:"type"`
	Path     string   `json:"path" yaml:"path"`
	Function string   `json:"function" yaml:"function"`
	Case     string   `json:"case,omitempty" yaml:"case,omitempty"`
	Count    int      `json:"count" yaml:"count"`
	Lines    []int    `json:"lines" yaml:"lines"`
	Severity Severity `json:"severity" yaml:"severity"`
	RuleID   string   `json:"rule_id,omitempty" yaml:"rule_id,omitempty"`
}
