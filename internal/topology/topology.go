// Package topology derives a file-level dependency graph from function
// calls, classifies files into architectural buckets and renders the result.
package topology

import (
	"log/slog"
	"sort"

	"coderecon/internal/config"
	"coderecon/internal/model"
	"coderecon/internal/paths"
	"coderecon/internal/slogutil"
)

// Bucket is an architectural role.
type Bucket string

const (
	EntryPoints          Bucket = "entry_points"
	Core                 Bucket = "core"
	DataLayer            Bucket = "data_layer"
	Utilities            Bucket = "utilities"
	ExternalIntegrations Bucket = "external_integrations"
	Others               Bucket = "others"
)

// BucketOrder is the order buckets are rendered in.
var BucketOrder = []Bucket{EntryPoints, Core, DataLayer, Utilities, ExternalIntegrations, Others}

// Title returns the section heading for b.
func (b Bucket) Title() string {
	switch b {
	case EntryPoints:
		return "ENTRY POINTS"
	case Core:
		return "CORE"
	case DataLayer:
		return "DATA LAYER"
	case Utilities:
		return "UTILITIES"
	case ExternalIntegrations:
		return "EXTERNAL INTEGRATIONS"
	default:
		return "OTHER FILES"
	}
}

// Edge is a dependency from one file to another.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// FileNode holds the derived facts about one file.
type FileNode struct {
	Path            string `json:"path" yaml:"path"`
	Rel             string `json:"rel" yaml:"rel"`
	Bucket          Bucket `json:"bucket" yaml:"bucket"`
	Role            string `json:"role" yaml:"role"`
	Risk            string `json:"risk" yaml:"risk"`
	Signals         int    `json:"signals" yaml:"signals"`
	FanIn           int    `json:"fan_in" yaml:"fan_in"`
	FanOut          int    `json:"fan_out" yaml:"fan_out"`
	ExternalImports int    `json:"external_imports" yaml:"external_imports"`
}

// Input is what Build needs from an analysis.
type Input struct {
	Root      string
	Files     []string
	Functions []model.FunctionRecord
	Signals   []model.AggregatedSignal
	// Imports counts external imports per file; nil scans files on disk.
	Imports ImportCounter
	Logger  *slog.Logger
}

// Topology is the classified file graph.
type Topology struct {
	Root           string              `json:"root" yaml:"root"`
	Files          []FileNode          `json:"files" yaml:"files"`
	Edges          []Edge              `json:"edges" yaml:"edges"`
	Buckets        map[Bucket][]string `json:"buckets" yaml:"buckets"`
	AmbiguousCalls int                 `json:"ambiguous_calls" yaml:"ambiguous_calls"`

	cfg   config.TopologyConfig
	index map[string]int
}

// Build resolves calls into file edges, counts fan-in, fan-out and signals
// per file, and classifies every file.
func Build(in Input, cfg config.TopologyConfig) *Topology {
	logger := slogutil.OrDiscard(in.Logger)
	imports := in.Imports
	if imports == nil {
		imports = NewImportScanner(cfg.ExternalMarkers)
	}

	t := &Topology{
		Root:    in.Root,
		Edges:   []Edge{},
		Buckets: make(map[Bucket][]string, len(BucketOrder)),
		cfg:     cfg,
		index:   make(map[string]int),
	}

	known := make(map[string]bool)
	for _, p := range in.Files {
		known[p] = true
	}
	for _, fn := range in.Functions {
		if fn.Path != "" {
			known[fn.Path] = true
		}
	}
	filePaths := make([]string, 0, len(known))
	for p := range known {
		filePaths = append(filePaths, p)
	}
	sort.Strings(filePaths)

	t.Files = make([]FileNode, len(filePaths))
	for i, p := range filePaths {
		t.index[p] = i
		t.Files[i] = FileNode{Path: p, Rel: paths.RelOrSelf(p, in.Root)}
	}

	resolver := NewResolver(in.Functions)
	edges := make(map[Edge]bool)
	for _, fn := range in.Functions {
		if fn.Path == "" {
			continue
		}
		for _, called := range fn.CalledFunctionNames {
			res := resolver.Resolve(called)
			switch res.Kind {
			case Unique:
				if res.File != fn.Path {
					edges[Edge{From: fn.Path, To: res.File}] = true
				}
			case Ambiguous:
				t.AmbiguousCalls++
			}
		}
	}
	for e := range edges {
		t.Edges = append(t.Edges, e)
		t.Files[t.index[e.From]].FanOut++
		t.Files[t.index[e.To]].FanIn++
	}
	sort.Slice(t.Edges, func(i, j int) bool {
		if t.Edges[i].From != t.Edges[j].From {
			return t.Edges[i].From < t.Edges[j].From
		}
		return t.Edges[i].To < t.Edges[j].To
	})

	for _, s := range in.Signals {
		if i, ok := t.index[s.Path]; ok {
			t.Files[i].Signals++
		}
	}

	for i := range t.Files {
		f := &t.Files[i]
		f.ExternalImports = imports.ExternalImports(f.Path)
		f.Risk = RiskLevel(f.Signals, cfg)
		f.Role = describe(f, cfg)
	}

	t.classify()
	logger.Debug("topology built", "files", len(t.Files), "edges", len(t.Edges), "ambiguous_calls", t.AmbiguousCalls)
	return t
}

// File returns the node for path.
func (t *Topology) File(path string) (FileNode, bool) {
	i, ok := t.index[path]
	if !ok {
		return FileNode{}, false
	}
	return t.Files[i], true
}

// Hotspots returns up to n files with signals, most signals first.
func (t *Topology) Hotspots(n int) []FileNode {
	var out []FileNode
	for _, f := range t.Files {
		if f.Signals > 0 {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Signals != out[j].Signals {
			return out[i].Signals > out[j].Signals
		}
		return out[i].Path < out[j].Path
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
