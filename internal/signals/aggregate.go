package signals

import (
	"sort"

	"coderecon/internal/model"
)

type key struct {
	typ, path, function, cas string
}

// Aggregate merges raw signals sharing (type, path, function, case).
// Count is the number of merged signals, Lines the sorted distinct positive
// lines, and Severity the highest in the group.
func Aggregate(raw []model.Signal) []model.AggregatedSignal {
	groups := make(map[key]*model.AggregatedSignal)
	lines := make(map[key]map[int]bool)

	for _, s := range raw {
		k := key{s.Type, s.Path, s.Function, s.Case}
		agg, ok := groups[k]
		if !ok {
			agg = &model.AggregatedSignal{
				Type:     s.Type,
				Path:     s.Path,
				Function: s.Function,
				Case:     s.Case,
				RuleID:   s.RuleID,
				Severity: s.Severity,
			}
			groups[k] = agg
			lines[k] = make(map[int]bool)
		}
		agg.Count++
		if s.Severity.Rank() > agg.Severity.Rank() {
			agg.Severity = s.Severity
		}
		if s.Line > 0 {
			lines[k][s.Line] = true
		}
	}

	out := make([]model.AggregatedSignal, 0, len(groups))
	for k, agg := range groups {
		agg.Lines = make([]int, 0, len(lines[k]))
		for l := range lines[k] {
			agg.Lines = append(agg.Lines, l)
		}
		sort.Ints(agg.Lines)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Function != b.Function {
			return a.Function < b.Function
		}
		return a.Case < b.Case
	})
	return out
}

// SeverityCounts tallies aggregated signals by severity.
func SeverityCounts(agg []model.AggregatedSignal) map[model.Severity]int {
	counts := map[model.Severity]int{
		model.SeverityHigh:   0,
		model.SeverityMedium: 0,
		model.SeverityLow:    0,
	}
	for _, a := range agg {
		counts[a.Severity]++
	}
	return counts
}

// TypeCounts tallies aggregated signals by type.
func TypeCounts(agg []model.AggregatedSignal) map[string]int {
	counts := make(map[string]int)
	for _, a := range agg {
		counts[a.Type]++
	}
	return counts
}
