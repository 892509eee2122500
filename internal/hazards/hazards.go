// Package hazards infers control-flow hazards inside extracted functions.
package hazards

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"coderecon/internal/config"
	"coderecon/internal/model"
	"coderecon/internal/slogutil"
)

// Rule identifiers.
const (
	RuleDeepNesting   = "CR1001"
	RuleLargeFunction = "CR1002"
	RuleLoop          = "CR2001"
	RuleException     = "CR3001"
	RuleDivision      = "CR4001"
)

// Rule describes one hazard rule.
type Rule struct {
	ID       string
	Case     string
	Reason   string
	Severity model.Severity
}

// Rules lists every rule with its fixed case label and default severity.
var Rules = map[string]Rule{
	RuleDeepNesting:   {RuleDeepNesting, "Deep Nesting", "Logic nested %d levels deep. High cognitive load.", model.SeverityHigh},
	RuleLargeFunction: {RuleLargeFunction, "Large Function", "Function is %d lines long. Suggest refactoring.", model.SeverityMedium},
	RuleLoop:          {RuleLoop, "Loop execution", "Potential for infinite loops or O(n) performance hits.", model.SeverityMedium},
	RuleException:     {RuleException, "Exception path", "Complexity in error recovery paths.", model.SeverityLow},
	RuleDivision:      {RuleDivision, "Math risk", "Division operation without visible zero-check.", model.SeverityMedium},
}

func emit(fn model.FunctionRecord, ruleID string, line int, nodeKind string, args ...any) model.EdgeCaseFinding {
	r := Rules[ruleID]
	reason := r.Reason
	if len(args) > 0 {
		reason = fmt.Sprintf(r.Reason, args...)
	}
	return model.EdgeCaseFinding{
		RuleID:   r.ID,
		Function: fn.Name,
		Path:     fn.Path,
		Case:     r.Case,
		Reason:   reason,
		Severity: r.Severity,
		Line:     line,
		NodeKind: nodeKind,
	}
}

// Detect runs every rule over functions. Each defining file is parsed once;
// files that cannot be read or parsed only get the length rule.
// Findings are sorted by (path, line, rule_id).
func Detect(ctx context.Context, functions []model.FunctionRecord, cfg config.HazardConfig, logger *slog.Logger) ([]model.EdgeCaseFinding, error) {
	logger = slogutil.OrDiscard(logger)

	byPath := make(map[string][]model.FunctionRecord)
	var order []string
	for _, fn := range functions {
		if _, ok := byPath[fn.Path]; !ok {
			order = append(order, fn.Path)
		}
		byPath[fn.Path] = append(byPath[fn.Path], fn)
	}

	findings := []model.EdgeCaseFinding{}
	for _, path := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fns := byPath[path]
		findings = append(findings, inspectFile(ctx, path, fns, cfg, logger)...)
		for _, fn := range fns {
			if f, ok := oversized(fn, cfg); ok {
				findings = append(findings, f)
			}
		}
	}

	SortFindings(findings)
	return findings, nil
}

// oversized applies the length rule to a function's span (end - start).
// Records without an end line are never oversized.
func oversized(fn model.FunctionRecord, cfg config.HazardConfig) (model.EdgeCaseFinding, bool) {
	if fn.LineEnd <= 0 || fn.LineStart <= 0 {
		return model.EdgeCaseFinding{}, false
	}
	span := fn.LineEnd - fn.LineStart
	if span <= cfg.LargeFunctionLines {
		return model.EdgeCaseFinding{}, false
	}
	f := emit(fn, RuleLargeFunction, fn.LineStart, "function", span)
	if span > cfg.HugeFunctionLines {
		f.Severity = model.SeverityHigh
	}
	return f, true
}

// SortFindings orders findings by (path, line, rule_id, function).
func SortFindings(findings []model.EdgeCaseFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Function < b.Function
	})
}
