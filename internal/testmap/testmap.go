// Package testmap finds test functions and the production names they call.
package testmap

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"coderecon/internal/config"
	"coderecon/internal/model"
	"coderecon/internal/paths"
	"coderecon/internal/slogutil"
)

// FileExtractor extracts the functions of one file.
type FileExtractor interface {
	ExtractFile(ctx context.Context, rec model.FileRecord) ([]model.FunctionRecord, error)
}

// Matcher applies test conventions to paths and function names.
type Matcher struct {
	patterns []string
	dirs     []string
	prefixes []string
}

// NewMatcher builds a matcher; invalid file patterns are dropped.
func NewMatcher(cfg config.TestConfig) *Matcher {
	m := &Matcher{
		dirs:     cfg.DirSegments,
		prefixes: cfg.FunctionPrefixes,
	}
	for _, p := range cfg.FilePatterns {
		if doublestar.ValidatePattern(p) {
			m.patterns = append(m.patterns, p)
		}
	}
	return m
}

// IsTestFile reports whether relPath looks like a test file: its base name
// matches a file pattern or one of its directories is a test directory.
func (m *Matcher) IsTestFile(relPath string) bool {
	base := filepath.Base(relPath)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return paths.HasSegment(filepath.Dir(relPath), m.dirs)
}

// IsTestFunction reports whether name carries a test prefix.
func (m *Matcher) IsTestFunction(name string) bool {
	for _, p := range m.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Map returns a record for every test function in the test files under root.
// Files the extractor cannot handle are skipped. Output is sorted by
// (path, test_name).
func Map(ctx context.Context, root string, files []model.FileRecord, cfg config.TestConfig, ex FileExtractor, logger *slog.Logger) ([]model.TestRecord, error) {
	logger = slogutil.OrDiscard(logger)
	m := NewMatcher(cfg)

	tests := []model.TestRecord{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !m.IsTestFile(paths.RelOrSelf(f.Path, root)) {
			continue
		}

		fns, err := ex.ExtractFile(ctx, f)
		if err != nil {
			logger.Debug("skipping test file", "path", f.Path, "error", err)
			continue
		}
		for _, tr := range m.Tests(fns) {
			tr.Path = paths.RelOrSelf(tr.Path, root)
			tests = append(tests, tr)
		}
	}

	sort.Slice(tests, func(i, j int) bool {
		if tests[i].Path != tests[j].Path {
			return tests[i].Path < tests[j].Path
		}
		return tests[i].TestName < tests[j].TestName
	})
	return tests, nil
}

// Tests converts the test functions among fns into test records. Paths are
// copied from the functions unchanged.
func (m *Matcher) Tests(fns []model.FunctionRecord) []model.TestRecord {
	var out []model.TestRecord
	for _, fn := range fns {
		if !m.IsTestFunction(fn.Name) {
			continue
		}
		refs := make([]string, len(fn.CalledFunctionNames))
		copy(refs, fn.CalledFunctionNames)
		sort.Strings(refs)
		out = append(out, model.TestRecord{
			TestName:                fn.Name,
			Path:                    fn.Path,
			ReferencedFunctionNames: refs,
		})
	}
	return out
}

// Tested returns the union of names referenced by tests.
func Tested(tests []model.TestRecord) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tests {
		for _, name := range t.ReferencedFunctionNames {
			set[name] = true
		}
	}
	return set
}
