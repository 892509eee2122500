//go:build cgo

package syntax

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"coderecon/internal/model"
)

// FindNodes finds all nodes of the given types in the tree.
func FindNodes(root *sitter.Node, types []string) []*sitter.Node {
	var result []*sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		if n.IsNamed() && Contains(types, n.Type()) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// Walk visits root and its descendants depth-first in source order.
// Returning false from fn skips the node's children.
func Walk(root *sitter.Node, fn func(*sitter.Node) bool) {
	if root == nil || root.IsNull() {
		return
	}
	if !fn(root) {
		return
	}
	for i := 0; i < int(root.ChildCount()); i++ {
		Walk(root.Child(i), fn)
	}
}

// Text returns the source covered by n.
func Text(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// Line returns the 1-based start line of n.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// EndLine returns the 1-based end line of n.
func EndLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}

// FunctionName returns a function node's name. Anonymous functions are named
// by the variable they are bound to; unbound ones return "".
func FunctionName(node *sitter.Node, source []byte, lang model.Language) string {
	if lang == model.LangKotlin && node.Type() == "function_declaration" {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child.Type() == "simple_identifier" {
				return Text(child, source)
			}
		}
		return ""
	}

	if Contains(AnonymousFunctionTypes, node.Type()) {
		return bindingName(node, source)
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return Text(nameNode, source)
	}
	return ""
}

func bindingName(node *sitter.Node, source []byte) string {
	parent := node.Parent()
	if parent == nil {
		return ""
	}

	switch parent.Type() {
	case "variable_declarator":
		// JavaScript, TypeScript and Java declarators
		if name := parent.ChildByFieldName("name"); name != nil && isIdentifier(name) {
			return Text(name, source)
		}
	case "public_field_definition":
		if name := parent.ChildByFieldName("name"); name != nil && isIdentifier(name) {
			return Text(name, source)
		}
	case "field_definition":
		if prop := parent.ChildByFieldName("property"); prop != nil && isIdentifier(prop) {
			return Text(prop, source)
		}
	case "assignment", "assignment_expression":
		if left := parent.ChildByFieldName("left"); left != nil && isIdentifier(left) {
			return Text(left, source)
		}
	case "let_declaration":
		if pat := parent.ChildByFieldName("pattern"); pat != nil && isIdentifier(pat) {
			return Text(pat, source)
		}
	case "expression_list":
		// Go: f := func() {...}, var f = func() {...}
		if parent.NamedChildCount() != 1 {
			return ""
		}
		decl := parent.Parent()
		if decl == nil {
			return ""
		}
		var left *sitter.Node
		switch decl.Type() {
		case "short_var_declaration", "assignment_statement":
			left = decl.ChildByFieldName("left")
		case "var_spec":
			left = decl.ChildByFieldName("name")
		}
		if left != nil && left.Type() == "expression_list" && left.NamedChildCount() == 1 {
			left = left.NamedChild(0)
		}
		if left != nil && isIdentifier(left) {
			return Text(left, source)
		}
	}
	return ""
}

func isIdentifier(n *sitter.Node) bool {
	switch n.Type() {
	case "identifier", "simple_identifier", "field_identifier", "property_identifier", "type_identifier", "shorthand_property_identifier_pattern":
		return true
	}
	return false
}

// isName excludes type identifiers, which sit beside parameter names.
func isName(n *sitter.Node) bool {
	switch n.Type() {
	case "identifier", "simple_identifier", "shorthand_property_identifier_pattern":
		return true
	}
	return false
}

// ParamNames returns the declared parameter names of a function node.
func ParamNames(node *sitter.Node, source []byte) []string {
	params := paramsNode(node)
	if params == nil {
		return []string{}
	}
	if isIdentifier(params) {
		return []string{Text(params, source)}
	}

	names := []string{}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		names = append(names, paramNames(params.NamedChild(i), source)...)
	}
	return names
}

func paramsNode(node *sitter.Node) *sitter.Node {
	if n := node.ChildByFieldName("parameters"); n != nil {
		return n
	}
	if n := node.ChildByFieldName("parameter"); n != nil {
		return n
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "function_value_parameters", "lambda_parameters", "closure_parameters", "formal_parameters":
			return child
		}
	}
	return nil
}

func paramNames(n *sitter.Node, source []byte) []string {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "comment":
		return nil
	case "self_parameter", "self":
		return []string{"self"}
	case "parameter_declaration", "variadic_parameter_declaration":
		// Go: a, b int
		var out []string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); isName(c) {
				out = append(out, Text(c, source))
			}
		}
		return out
	}
	if isIdentifier(n) {
		return []string{Text(n, source)}
	}

	for _, field := range []string{"name", "pattern", "left"} {
		if c := n.ChildByFieldName(field); c != nil {
			return paramNames(c, source)
		}
	}

	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch {
		case isName(c):
			out = append(out, Text(c, source))
		case c.Type() == "variable_declarator":
			out = append(out, paramNames(c, source)...)
		}
	}
	return out
}

// CallNames returns the sorted, distinct names called anywhere inside node.
// The callee name is the rightmost identifier, so foo(), obj.foo() and
// pkg.Foo() yield foo, foo and Foo.
func CallNames(node *sitter.Node, source []byte, lang model.Language) []string {
	seen := make(map[string]bool)
	for _, call := range FindNodes(node, CallNodeTypes(lang)) {
		var target *sitter.Node
		if call.Type() == "method_invocation" {
			target = call.ChildByFieldName("name")
		} else {
			target = call.ChildByFieldName("function")
			if target == nil && call.NamedChildCount() > 0 {
				target = call.NamedChild(0)
			}
		}
		if name := rightmost(target, source); name != "" {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rightmost(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	if isIdentifier(n) {
		return Text(n, source)
	}

	var next *sitter.Node
	switch n.Type() {
	case "selector_expression", "field_expression":
		next = n.ChildByFieldName("field")
	case "member_expression":
		next = n.ChildByFieldName("property")
	case "attribute":
		next = n.ChildByFieldName("attribute")
	case "scoped_identifier":
		next = n.ChildByFieldName("name")
	case "generic_function":
		next = n.ChildByFieldName("function")
	case "navigation_expression", "navigation_suffix":
		if c := n.NamedChildCount(); c > 0 {
			next = n.NamedChild(int(c) - 1)
		}
	}
	return rightmost(next, source)
}

// IsElseIf reports whether a conditional node is the else branch of another
// conditional, so it continues the chain instead of nesting deeper.
func IsElseIf(n *sitter.Node) bool {
	if isElseToken(n.PrevSibling()) {
		return true
	}
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "else_clause":
		return true
	case "control_structure_body":
		return isElseToken(parent.PrevSibling())
	}
	return false
}

func isElseToken(n *sitter.Node) bool {
	return n != nil && n.Type() == "else"
}
