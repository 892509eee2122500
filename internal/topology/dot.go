package topology

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"coderecon/internal/model"
	"coderecon/internal/paths"
)

// Node colours for the function graph.
const (
	colorOrchestrator = "purple"
	colorHighRisk     = "red"
	colorMediumRisk   = "orange"
	colorDefault      = "#4da6ff"
)

// WriteFunctionDOT writes a Graphviz graph of function calls, one cluster
// per file. Nodes are function names, so same-named functions share a node.
// Only calls to defined names become edges.
func WriteFunctionDOT(w io.Writer, root string, functions []model.FunctionRecord, signals []model.AggregatedSignal) error {
	defined := make(map[string]bool)
	for _, fn := range functions {
		defined[fn.Name] = true
	}

	risk := make(map[string]int)
	for _, s := range signals {
		if s.Function != "" {
			risk[s.Function]++
		}
	}

	type edge struct{ from, to string }
	edges := make(map[edge]bool)
	fanOut := make(map[string]int)
	groups := make(map[string][]string)
	for _, fn := range functions {
		groups[fn.Path] = append(groups[fn.Path], fn.Name)
		for _, called := range fn.CalledFunctionNames {
			if !defined[called] {
				continue
			}
			fanOut[fn.Name]++
			edges[edge{fn.Name, called}] = true
		}
	}

	var sb strings.Builder
	sb.WriteString("// coderecon function graph\n")
	sb.WriteString("digraph coderecon {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  bgcolor=\"#111111\";\n")
	sb.WriteString("  node [style=filled, fontcolor=white];\n\n")

	files := make([]string, 0, len(groups))
	for f := range groups {
		files = append(files, f)
	}
	sort.Strings(files)

	drawn := make(map[string]bool)
	for i, file := range files {
		fmt.Fprintf(&sb, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&sb, "    label=%s;\n    color=gray;\n", quote(paths.RelOrSelf(file, root)))
		names := groups[file]
		sort.Strings(names)
		for _, name := range names {
			if drawn[name] {
				continue
			}
			drawn[name] = true
			fmt.Fprintf(&sb, "    %s [fillcolor=%s];\n", quote(name), quote(nodeColor(fanOut[name], risk[name])))
		}
		sb.WriteString("  }\n")
	}

	sorted := make([]edge, 0, len(edges))
	for e := range edges {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].from != sorted[j].from {
			return sorted[i].from < sorted[j].from
		}
		return sorted[i].to < sorted[j].to
	})
	if len(sorted) > 0 {
		sb.WriteByte('\n')
	}
	for _, e := range sorted {
		fmt.Fprintf(&sb, "  %s -> %s;\n", quote(e.from), quote(e.to))
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func nodeColor(outDegree, risk int) string {
	switch {
	case outDegree >= 5:
		return colorOrchestrator
	case risk >= 5:
		return colorHighRisk
	case risk >= 2:
		return colorMediumRisk
	default:
		return colorDefault
	}
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
