//go:build cgo

package hazards

import (
	"context"
	"log/slog"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"coderecon/internal/config"
	"coderecon/internal/model"
	"coderecon/internal/syntax"
)

type fnKey struct {
	name string
	line int
}

// inspectFile parses path once and runs the structural rules over each of
// fns found in the tree by name and start line.
func inspectFile(ctx context.Context, path string, fns []model.FunctionRecord, cfg config.HazardConfig, logger *slog.Logger) []model.EdgeCaseFinding {
	lang := model.Language(fns[0].Language)
	if !syntax.Supported(lang) {
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("skipping unreadable file", "path", path, "error", err)
		return nil
	}

	tree, err := syntax.NewParser().Parse(ctx, source, lang)
	if err != nil {
		logger.Debug("skipping unparseable file", "path", path, "error", err)
		return nil
	}
	defer tree.Close()

	fnTypes := syntax.FunctionNodeTypes(lang)
	nodes := make(map[fnKey]*sitter.Node)
	for _, n := range syntax.FindNodes(tree.RootNode(), fnTypes) {
		name := syntax.FunctionName(n, source, lang)
		if name == "" {
			continue
		}
		k := fnKey{name, syntax.Line(n)}
		if _, dup := nodes[k]; !dup {
			nodes[k] = n
		}
	}

	v := &visitor{
		lang:     lang,
		source:   source,
		fnTypes:  fnTypes,
		nesting:  syntax.NestingNodeTypes(lang),
		conds:    syntax.ConditionalNodeTypes(lang),
		loops:    syntax.LoopNodeTypes(lang),
		tries:    syntax.TryNodeTypes(lang),
		divs:     syntax.DivisionNodeTypes(lang),
		divOps:   syntax.DivisionOperators(lang),
		maxDepth: cfg.MaxNestingDepth,
	}

	var findings []model.EdgeCaseFinding
	for _, fn := range fns {
		n, ok := nodes[fnKey{fn.Name, fn.LineStart}]
		if !ok {
			continue
		}
		findings = append(findings, v.inspect(fn, n)...)
	}
	return findings
}

type visitor struct {
	lang     model.Language
	source   []byte
	fnTypes  []string
	nesting  []string
	conds    []string
	loops    []string
	tries    []string
	divs     []string
	divOps   []string
	maxDepth int
}

func (v *visitor) inspect(fn model.FunctionRecord, node *sitter.Node) []model.EdgeCaseFinding {
	var findings []model.EdgeCaseFinding

	if depth := v.depth(node, 0); depth > v.maxDepth {
		findings = append(findings, emit(fn, RuleDeepNesting, fn.LineStart, node.Type(), depth))
	}

	v.body(node, func(n *sitter.Node) {
		kind := n.Type()
		switch {
		case syntax.Contains(v.loops, kind):
			findings = append(findings, emit(fn, RuleLoop, syntax.Line(n), kind))
		case syntax.Contains(v.tries, kind):
			findings = append(findings, emit(fn, RuleException, syntax.Line(n), kind))
		case syntax.Contains(v.divs, kind) && v.isDivision(n):
			findings = append(findings, emit(fn, RuleDivision, syntax.Line(n), kind))
		}
	})
	return findings
}

// body visits the named descendants of fnNode, skipping nested functions
// that are extracted on their own.
func (v *visitor) body(fnNode *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(fnNode.ChildCount()); i++ {
		syntax.Walk(fnNode.Child(i), func(n *sitter.Node) bool {
			if v.ownFunction(n) {
				return false
			}
			if n.IsNamed() {
				visit(n)
			}
			return true
		})
	}
}

func (v *visitor) ownFunction(n *sitter.Node) bool {
	return n.IsNamed() && syntax.Contains(v.fnTypes, n.Type()) && syntax.FunctionName(n, v.source, v.lang) != ""
}

// depth returns the deepest nesting below n. Conditionals continuing an
// else-if chain stay at their parent's depth.
func (v *visitor) depth(n *sitter.Node, current int) int {
	deepest := current
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || child.IsNull() || v.ownFunction(child) {
			continue
		}
		next := current
		if child.IsNamed() && syntax.Contains(v.nesting, child.Type()) {
			if !(syntax.Contains(v.conds, child.Type()) && syntax.IsElseIf(child)) {
				next++
			}
		}
		if d := v.depth(child, next); d > deepest {
			deepest = d
		}
	}
	return deepest
}

func (v *visitor) isDivision(n *sitter.Node) bool {
	if op := n.ChildByFieldName("operator"); op != nil {
		return syntax.Contains(v.divOps, op.Type())
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && syntax.Contains(v.divOps, c.Type()) {
			return true
		}
	}
	return false
}
