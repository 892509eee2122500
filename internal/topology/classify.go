package topology

import (
	"path"
	"sort"
	"strings"

	"coderecon/internal/config"
	"coderecon/internal/paths"
)

type roleHint int

const (
	hintNone roleHint = iota
	hintData
	hintUtility
	hintIntegration
	hintEntry
)

// guessRole reads cues from a root-relative path: directory names, the file
// stem, and entry-style file names.
func guessRole(rel string, cfg config.TopologyConfig) roleHint {
	lower := strings.ToLower(rel)
	segs := paths.Segments(lower)
	if len(segs) > 0 {
		base := segs[len(segs)-1]
		segs[len(segs)-1] = strings.TrimSuffix(base, path.Ext(base))
	}

	switch {
	case hasAny(segs, cfg.DataHints):
		return hintData
	case hasAny(segs, cfg.UtilityHints):
		return hintUtility
	case hasAny(segs, cfg.IntegrationHints):
		return hintIntegration
	}

	if len(segs) > 0 {
		for _, name := range cfg.EntryNames {
			if segs[len(segs)-1] == name {
				return hintEntry
			}
		}
	}
	return hintNone
}

func hasAny(segs, names []string) bool {
	for _, s := range segs {
		for _, n := range names {
			if s == n {
				return true
			}
		}
	}
	return false
}

// RiskLevel maps a signal count to High, Medium or Low.
func RiskLevel(signals int, cfg config.TopologyConfig) string {
	switch {
	case signals >= cfg.HighRiskSignals:
		return "High"
	case signals >= cfg.MediumRiskSignals:
		return "Medium"
	default:
		return "Low"
	}
}

// describe derives a short role line from the path hint and connectivity.
func describe(f *FileNode, cfg config.TopologyConfig) string {
	var base string
	switch guessRole(f.Rel, cfg) {
	case hintEntry:
		base = "Command/entry dispatcher"
	case hintIntegration:
		base = "LLM/MCP integration layer"
	case hintData:
		base = "Data/schema layer"
	case hintUtility:
		base = "Utility/reporting layer"
	default:
		switch {
		case f.FanIn == 0 && f.FanOut > 0:
			base = "Entry-style coordinator"
		case f.FanIn > 0 && f.FanOut > 0:
			base = "Core processing module"
		case f.FanOut == 0 && f.FanIn > 0:
			base = "Leaf/helper module"
		default:
			base = "Support module"
		}
	}

	var extras []string
	if f.ExternalImports >= cfg.ExternalHeavyImports {
		extras = append(extras, "external-heavy")
	}
	if f.FanOut >= cfg.WideFanOut {
		extras = append(extras, "wide-orchestrator")
	}
	if f.FanIn >= cfg.CentralFanIn {
		extras = append(extras, "central-dependency")
	}
	if len(extras) > 0 {
		base += " (" + strings.Join(extras, ", ") + ")"
	}
	return base
}

// classify assigns every file to the first matching bucket. When nothing
// qualifies as Core, the best connected files are moved there from
// whatever bucket they landed in.
func (t *Topology) classify() {
	cfg := t.cfg
	th := cfg.CoreThreshold
	if len(t.Files) < cfg.SmallRepoFiles {
		th = cfg.SmallRepoCoreThreshold
	}

	for i := range t.Files {
		f := &t.Files[i]
		hint := guessRole(f.Rel, cfg)
		switch {
		case hint == hintData:
			f.Bucket = DataLayer
		case hint == hintUtility:
			f.Bucket = Utilities
		case hint == hintIntegration || f.ExternalImports >= cfg.ExternalImportThreshold:
			f.Bucket = ExternalIntegrations
		case hint == hintEntry || (f.FanIn == 0 && f.FanOut > 0):
			f.Bucket = EntryPoints
		case f.FanIn >= th && f.FanOut >= th:
			f.Bucket = Core
		default:
			f.Bucket = Others
		}
	}

	if !t.hasBucket(Core) {
		candidates := make([]*FileNode, len(t.Files))
		for i := range t.Files {
			candidates[i] = &t.Files[i]
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if da, db := a.FanIn+a.FanOut, b.FanIn+b.FanOut; da != db {
				return da > db
			}
			if a.Signals != b.Signals {
				return a.Signals > b.Signals
			}
			return a.Path < b.Path
		})
		for i, f := range candidates {
			if i >= cfg.FallbackCoreCount {
				break
			}
			f.Bucket = Core
		}
	}

	for _, b := range BucketOrder {
		t.Buckets[b] = []string{}
	}
	for _, f := range t.Files {
		t.Buckets[f.Bucket] = append(t.Buckets[f.Bucket], f.Path)
	}
}

func (t *Topology) hasBucket(b Bucket) bool {
	for _, f := range t.Files {
		if f.Bucket == b {
			return true
		}
	}
	return false
}
