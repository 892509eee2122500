//go:build cgo

package syntax

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"coderecon/internal/model"
)

// ErrUnsupported is returned for languages without a grammar.
var ErrUnsupported = errors.New("no grammar for language")

// ErrSyntax is returned when the parsed tree contains error nodes.
var ErrSyntax = errors.New("source has syntax errors")

// Parser wraps a tree-sitter parser. It is not safe for concurrent use;
// give each worker its own.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter parser.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses source and returns the tree. The caller closes it.
func (p *Parser) Parse(ctx context.Context, source []byte, lang model.Language) (*sitter.Tree, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, ErrSyntax
	}
	return tree, nil
}

// Available reports whether tree parsing is compiled in.
func Available() bool {
	return true
}

func getLanguage(lang model.Language) (*sitter.Language, error) {
	switch lang {
	case model.LangGo:
		return golang.GetLanguage(), nil
	case model.LangJavaScript:
		return javascript.GetLanguage(), nil
	case model.LangTypeScript:
		return typescript.GetLanguage(), nil
	case model.LangTSX:
		return tsx.GetLanguage(), nil
	case model.LangPython:
		return python.GetLanguage(), nil
	case model.LangRust:
		return rust.GetLanguage(), nil
	case model.LangJava:
		return java.GetLanguage(), nil
	case model.LangKotlin:
		return kotlin.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, lang)
	}
}
