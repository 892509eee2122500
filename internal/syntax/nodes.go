// Package syntax wraps tree-sitter parsing and the per-language node tables
// that function extraction and hazard detection share.
package syntax

import "coderecon/internal/model"

// Supported reports whether lang has a tree-sitter grammar wired in.
func Supported(lang model.Language) bool {
	switch lang {
	case model.LangGo, model.LangJavaScript, model.LangTypeScript, model.LangTSX,
		model.LangPython, model.LangRust, model.LangJava, model.LangKotlin:
		return true
	}
	return false
}

// FunctionNodeTypes returns the node types that represent functions for a language.
func FunctionNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangGo:
		return []string{"function_declaration", "method_declaration", "func_literal"}
	case model.LangJavaScript, model.LangTypeScript, model.LangTSX:
		return []string{"function_declaration", "generator_function_declaration", "function_expression", "arrow_function", "method_definition"}
	case model.LangPython:
		return []string{"function_definition", "lambda"}
	case model.LangRust:
		return []string{"function_item", "closure_expression"}
	case model.LangJava:
		return []string{"method_declaration", "constructor_declaration", "lambda_expression"}
	case model.LangKotlin:
		return []string{"function_declaration", "lambda_literal", "anonymous_function"}
	default:
		return nil
	}
}

// AnonymousFunctionTypes are function nodes that only get a name through a binding.
var AnonymousFunctionTypes = []string{
	"func_literal", "function_expression", "arrow_function",
	"lambda", "closure_expression", "lambda_expression", "lambda_literal", "anonymous_function",
}

// CallNodeTypes returns call-site node types.
func CallNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangPython:
		return []string{"call"}
	case model.LangJava:
		return []string{"method_invocation"}
	case model.LangGo, model.LangJavaScript, model.LangTypeScript, model.LangTSX, model.LangRust, model.LangKotlin:
		return []string{"call_expression"}
	default:
		return nil
	}
}

// LoopNodeTypes returns loop constructs.
func LoopNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangGo:
		return []string{"for_statement"}
	case model.LangJavaScript, model.LangTypeScript, model.LangTSX:
		return []string{"for_statement", "for_in_statement", "while_statement", "do_statement"}
	case model.LangPython:
		return []string{"for_statement", "while_statement"}
	case model.LangRust:
		return []string{"for_expression", "while_expression", "loop_expression"}
	case model.LangJava:
		return []string{"for_statement", "enhanced_for_statement", "while_statement", "do_statement"}
	case model.LangKotlin:
		return []string{"for_statement", "while_statement", "do_while_statement"}
	default:
		return nil
	}
}

// TryNodeTypes returns exception-handling constructs.
func TryNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangJavaScript, model.LangTypeScript, model.LangTSX, model.LangPython:
		return []string{"try_statement"}
	case model.LangJava:
		return []string{"try_statement", "try_with_resources_statement"}
	case model.LangKotlin:
		return []string{"try_expression"}
	default:
		return nil
	}
}

// ConditionalNodeTypes returns branching constructs that open a nesting level.
func ConditionalNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangGo:
		return []string{"if_statement", "expression_switch_statement", "type_switch_statement", "select_statement"}
	case model.LangJavaScript, model.LangTypeScript, model.LangTSX:
		return []string{"if_statement", "switch_statement"}
	case model.LangPython:
		return []string{"if_statement", "match_statement"}
	case model.LangRust:
		return []string{"if_expression", "match_expression"}
	case model.LangJava:
		return []string{"if_statement", "switch_expression", "switch_statement"}
	case model.LangKotlin:
		return []string{"if_expression", "when_expression"}
	default:
		return nil
	}
}

// ResourceScopeNodeTypes returns scoped-resource constructs.
func ResourceScopeNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangPython:
		return []string{"with_statement"}
	default:
		return nil
	}
}

// NestingNodeTypes is the union of conditionals, loops, exception handling and resource scopes.
func NestingNodeTypes(lang model.Language) []string {
	var out []string
	out = append(out, ConditionalNodeTypes(lang)...)
	out = append(out, LoopNodeTypes(lang)...)
	out = append(out, TryNodeTypes(lang)...)
	out = append(out, ResourceScopeNodeTypes(lang)...)
	return out
}

// DivisionNodeTypes returns binary-operator node types that may hold a division.
func DivisionNodeTypes(lang model.Language) []string {
	switch lang {
	case model.LangPython:
		return []string{"binary_operator"}
	case model.LangKotlin:
		return []string{"multiplicative_expression"}
	case model.LangGo, model.LangJavaScript, model.LangTypeScript, model.LangTSX, model.LangRust, model.LangJava:
		return []string{"binary_expression"}
	default:
		return nil
	}
}

// DivisionOperators returns the operator tokens counted as division.
func DivisionOperators(lang model.Language) []string {
	if lang == model.LangPython {
		return []string{"/", "//"}
	}
	return []string{"/"}
}

// Contains checks if a slice contains a string.
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
