//go:build cgo

package extract

import (
	"context"
	"sync"

	"coderecon/internal/model"
	"coderecon/internal/syntax"
)

// TreeExtractor extracts functions from a tree-sitter syntax tree.
type TreeExtractor struct {
	parsers sync.Pool
}

// NewTreeExtractor creates a tree extractor. It is safe for concurrent use.
func NewTreeExtractor() *TreeExtractor {
	return &TreeExtractor{
		parsers: sync.Pool{New: func() any { return syntax.NewParser() }},
	}
}

// Extract parses source and returns one record per named function.
// Unsupported languages and sources with syntax errors return ErrFallback.
func (e *TreeExtractor) Extract(ctx context.Context, path string, lang model.Language, source []byte) ([]model.FunctionRecord, error) {
	if !syntax.Supported(lang) {
		return nil, fallback(syntax.ErrUnsupported)
	}

	parser := e.parsers.Get().(*syntax.Parser)
	defer e.parsers.Put(parser)

	tree, err := parser.Parse(ctx, source, lang)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fallback(err)
	}
	defer tree.Close()

	functions := make([]model.FunctionRecord, 0)
	for _, node := range syntax.FindNodes(tree.RootNode(), syntax.FunctionNodeTypes(lang)) {
		name := syntax.FunctionName(node, source, lang)
		if name == "" {
			continue
		}
		start, end := syntax.Line(node), syntax.EndLine(node)
		functions = append(functions, model.FunctionRecord{
			Name:                name,
			Path:                path,
			LineStart:           start,
			LineEnd:             end,
			Length:              end - start + 1,
			Params:              syntax.ParamNames(node, source),
			CalledFunctionNames: syntax.CallNames(node, source, lang),
			Language:            string(lang),
			Strategy:            model.StrategyTree,
		})
	}
	return functions, nil
}
