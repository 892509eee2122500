// Package signals turns functions, findings and tests into ranked signals
// and merges duplicates.
package signals

import (
	"coderecon/internal/config"
	"coderecon/internal/model"
	"coderecon/internal/testmap"
)

// Generator converts analysis records into raw signals.
type Generator struct {
	cfg config.SignalConfig
}

// NewGenerator creates a generator with the given thresholds.
func NewGenerator(cfg config.SignalConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate is shorthand for NewGenerator(cfg).Generate.
func Generate(functions []model.FunctionRecord, findings []model.EdgeCaseFinding, tests []model.TestRecord, cfg config.SignalConfig) []model.Signal {
	return NewGenerator(cfg).Generate(functions, findings, tests)
}

// Generate emits, per function, a large_function signal when it is long and
// an untested_function signal when no test references its name; then one
// potential_edge_case signal per finding.
func (g *Generator) Generate(functions []model.FunctionRecord, findings []model.EdgeCaseFinding, tests []model.TestRecord) []model.Signal {
	tested := testmap.Tested(tests)

	out := []model.Signal{}
	for _, fn := range functions {
		name := orUnknown(fn.Name)
		path := orUnknown(fn.Path)

		if sev, ok := g.lengthSeverity(fn.Length); ok {
			out = append(out, model.Signal{
				Type:     model.SignalLargeFunction,
				Function: name,
				Path:     path,
				Line:     fn.LineStart,
				Length:   fn.Length,
				Severity: sev,
			})
		}

		if !tested[fn.Name] {
			out = append(out, model.Signal{
				Type:     model.SignalUntestedFunction,
				Function: name,
				Path:     path,
				Line:     fn.LineStart,
				Severity: g.Severity(model.SignalUntestedFunction),
			})
		}
	}

	for _, f := range findings {
		out = append(out, model.Signal{
			Type:            model.SignalPotentialEdgeCase,
			Function:        orUnknown(f.Function),
			Path:            orUnknown(f.Path),
			Line:            f.Line,
			Case:            f.Case,
			RuleID:          f.RuleID,
			NodeKind:        f.NodeKind,
			FindingSeverity: f.Severity,
			Severity:        g.Severity(model.SignalPotentialEdgeCase),
		})
	}
	return out
}

func (g *Generator) lengthSeverity(length int) (model.Severity, bool) {
	switch {
	case length > g.cfg.HighLengthThreshold:
		return model.SeverityHigh, true
	case length > g.cfg.MediumLengthThreshold:
		return model.SeverityMedium, true
	}
	return "", false
}

// Severity looks up a signal type in the severity table; unknown types are low.
func (g *Generator) Severity(signalType string) model.Severity {
	if s, ok := g.cfg.Severity[signalType]; ok {
		return model.ParseSeverity(s)
	}
	return model.SeverityLow
}

func orUnknown(s string) string {
	if s == "" {
		return model.Unknown
	}
	return s
}
