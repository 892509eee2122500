package topology

import (
	"sort"

	"coderecon/internal/model"
)

// ResolutionKind tags the outcome of resolving a called name.
type ResolutionKind int

const (
	// Unresolved: no known file defines the name.
	Unresolved ResolutionKind = iota
	// Unique: exactly one file defines the name.
	Unique
	// Ambiguous: several files define the name.
	Ambiguous
)

func (k ResolutionKind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unresolved"
	}
}

// Resolution is the result of looking up a called name.
// File is set only for Unique; Candidates lists every defining file.
type Resolution struct {
	Kind       ResolutionKind
	File       string
	Candidates []string
}

// Resolver maps function names to the files that define them.
type Resolver struct {
	defs map[string]map[string]bool
}

// NewResolver indexes the defining file of every named function.
func NewResolver(functions []model.FunctionRecord) *Resolver {
	r := &Resolver{defs: make(map[string]map[string]bool)}
	for _, fn := range functions {
		if fn.Name == "" || fn.Path == "" {
			continue
		}
		files, ok := r.defs[fn.Name]
		if !ok {
			files = make(map[string]bool)
			r.defs[fn.Name] = files
		}
		files[fn.Path] = true
	}
	return r
}

// Resolve looks up name.
func (r *Resolver) Resolve(name string) Resolution {
	files := r.defs[name]
	switch len(files) {
	case 0:
		return Resolution{Kind: Unresolved}
	case 1:
		for f := range files {
			return Resolution{Kind: Unique, File: f, Candidates: []string{f}}
		}
	}
	candidates := make([]string, 0, len(files))
	for f := range files {
		candidates = append(candidates, f)
	}
	sort.Strings(candidates)
	return Resolution{Kind: Ambiguous, Candidates: candidates}
}
