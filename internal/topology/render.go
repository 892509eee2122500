package topology

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const legend = `ARCHITECTURAL TOPOLOGY MAP

                [ Utilities ]
                      ↑
[ Entry Points ] → [ Core ] ← [ Data Layer ]
                      ↓
          [ External Integrations ]

`

// Render writes the plain-text topology report: legend, one section per
// bucket, the risk heatmap and, when calls were skipped, a closing note.
func (t *Topology) Render(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(legend)

	for _, b := range BucketOrder {
		sb.WriteString(b.Title())
		sb.WriteByte('\n')
		items := t.Buckets[b]
		if len(items) == 0 {
			sb.WriteString("  (none)\n\n")
			continue
		}
		for _, p := range items {
			f, _ := t.File(p)
			fmt.Fprintf(&sb, "  - %s\n      Role: %s\n      Risk: %s | Signals: %d | Fan-in: %d | Fan-out: %d\n",
				f.Rel, f.Role, f.Risk, f.Signals, f.FanIn, f.FanOut)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("\nRISK HEATMAP (by signal count)\n\n")
	heat := t.Heatmap()
	maxCount := 0
	if len(heat) > 0 {
		maxCount = heat[0].Signals
	}
	for _, f := range heat {
		fmt.Fprintf(&sb, "%-6s %-20s %3d  %s\n", f.Risk, RiskBar(f.Signals, maxCount, t.cfg.HeatmapWidth), f.Signals, f.Rel)
	}

	if t.AmbiguousCalls > 0 {
		fmt.Fprintf(&sb, "\nNOTE: %d ambiguous function-name calls were skipped (same function name defined in multiple files).\n", t.AmbiguousCalls)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Heatmap returns every file ordered by descending signal count, then path.
func (t *Topology) Heatmap() []FileNode {
	out := make([]FileNode, len(t.Files))
	copy(out, t.Files)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Signals != out[j].Signals {
			return out[i].Signals > out[j].Signals
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// RiskBar draws count relative to maxCount, at least one cell wide.
func RiskBar(count, maxCount, width int) string {
	if width <= 0 {
		width = 20
	}
	if maxCount <= 0 {
		return "█"
	}
	filled := count * width / maxCount
	if filled < 1 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}
