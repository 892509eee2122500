package extract

import (
	"bytes"
	"context"
	"regexp"
	"sort"

	"coderecon/internal/model"
)

// declarationPatterns capture a function name in group 1.
var declarationPatterns = []*regexp.Regexp{
	// JavaScript, TypeScript, PHP
	regexp.MustCompile(`(?m)^[ \t]*(?:(?:export|default|async|public|private|protected|static|final|abstract)[ \t]+)*function\*?[ \t]+&?([A-Za-z_$][\w$]*)[ \t]*[(<]`),
	// Python, Ruby, Scala
	regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?def[ \t]+(?:self\.)?([A-Za-z_]\w*[?!]?)`),
	// Go, Swift
	regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|internal|fileprivate|open|static|override|mutating)[ \t]+)*func[ \t]+(?:\([^)]*\)[ \t]*)?([A-Za-z_]\w*)[ \t]*[\[(<]`),
	// Rust
	regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:\([^)]*\))?[ \t]+)?(?:(?:const|async|unsafe|extern(?:[ \t]+"[^"]*")?)[ \t]+)*fn[ \t]+([A-Za-z_]\w*)`),
	// Kotlin
	regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|protected|internal|open|override|suspend|inline|operator|infix|tailrec)[ \t]+)*fun[ \t]+(?:<[^>]*>[ \t]*)?(?:[\w.]+\.)?([A-Za-z_]\w*)[ \t]*\(`),
	// Perl
	regexp.MustCompile(`(?m)^[ \t]*sub[ \t]+([A-Za-z_]\w*)`),
	// shell: name() {
	regexp.MustCompile(`(?m)^[ \t]*([A-Za-z_][\w-]*)[ \t]*\(\)[ \t]*\{`),
	// shell: function name { with optional ()
	regexp.MustCompile(`(?m)^[ \t]*function[ \t]+([A-Za-z_][\w-]*)[ \t]*(?:\(\))?[ \t]*\{`),
}

// bindingPatterns capture lambdas and arrow functions assigned to a name.
var bindingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:(?:const|let|var)[ \t]+)?([A-Za-z_$][\w$]*)[ \t]*(?::[^=\n]+)?=[ \t]*(?:async[ \t]+)?(?:function\b|\([^)\n]*\)[ \t]*(?::[^=\n]+)?=>|[A-Za-z_$][\w$]*[ \t]*=>)`),
	regexp.MustCompile(`(?m)^[ \t]*([A-Za-z_]\w*)[ \t]*=[ \t]*lambda\b`),
}

// methodPattern matches C-family "type name(args) {" definitions, with the
// brace allowed on the next line.
var methodPattern = regexp.MustCompile(`(?m)^[ \t]*(?:[\w<>\[\],.*&:~?]+[ \t]+)*([A-Za-z_~]\w*)[ \t]*\([^;{}()]*(?:\([^()]*\)[^;{}()]*)*\)[ \t]*(?:const[ \t]*)?(?:throws[ \t]+[\w., ]+)?(?::[ \t]*[\w<>\[\]., ]+)?[ \t\r\n]*\{`)

// controlKeywords look like calls followed by a block but are never functions.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "else": true, "do": true, "try": true, "new": true,
	"sizeof": true, "elif": true, "foreach": true, "using": true, "lock": true,
	"synchronized": true, "typeof": true, "when": true, "match": true,
	"with": true, "until": true, "unless": true, "throw": true, "await": true,
	"yield": true, "assert": true, "defer": true, "go": true, "select": true,
	"fixed": true, "function": true, "func": true, "fn": true, "def": true,
}

// PatternExtractor finds function declarations with regular expressions.
// Records carry the start line only: LineEnd and Length are zero, and no
// parameters or calls are reported.
type PatternExtractor struct{}

// NewPatternExtractor creates a pattern extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract never fails; a source with no matches yields an empty list.
func (e *PatternExtractor) Extract(_ context.Context, path string, lang model.Language, source []byte) ([]model.FunctionRecord, error) {
	type hit struct {
		name string
		at   int
	}

	var hits []hit
	collect := func(re *regexp.Regexp) {
		for _, m := range re.FindAllSubmatchIndex(source, -1) {
			name := string(source[m[2]:m[3]])
			if controlKeywords[name] {
				continue
			}
			hits = append(hits, hit{name: name, at: m[2]})
		}
	}
	for _, re := range declarationPatterns {
		collect(re)
	}
	for _, re := range bindingPatterns {
		collect(re)
	}
	collect(methodPattern)

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	type key struct {
		name string
		line int
	}

	functions := make([]model.FunctionRecord, 0, len(hits))
	seen := make(map[key]bool)
	for _, h := range hits {
		line := 1 + bytes.Count(source[:h.at], []byte{'\n'})
		k := key{h.name, line}
		if seen[k] {
			continue
		}
		seen[k] = true
		functions = append(functions, model.FunctionRecord{
			Name:                h.name,
			Path:                path,
			LineStart:           line,
			Params:              []string{},
			CalledFunctionNames: []string{},
			Language:            string(lang),
			Strategy:            model.StrategyPattern,
		})
	}
	return functions, nil
}
