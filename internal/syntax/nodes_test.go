package syntax

import (
	"testing"

	"coderecon/internal/model"
)

func TestSupported(t *testing.T) {
	for _, lang := range []model.Language{model.LangGo, model.LangPython, model.LangTSX, model.LangKotlin} {
		if !Supported(lang) {
			t.Errorf("Supported(%s) = false", lang)
		}
	}
	for _, lang := range []model.Language{model.LangRuby, model.LangC, model.LangShell} {
		if Supported(lang) {
			t.Errorf("Supported(%s) = true, want pattern-only", lang)
		}
	}
}

func TestTablesCoverSupportedLanguages(t *testing.T) {
	for _, lang := range []model.Language{
		model.LangGo, model.LangJavaScript, model.LangTypeScript, model.LangTSX,
		model.LangPython, model.LangRust, model.LangJava, model.LangKotlin,
	} {
		if len(FunctionNodeTypes(lang)) == 0 {
			t.Errorf("%s: no function node types", lang)
		}
		if len(CallNodeTypes(lang)) == 0 {
			t.Errorf("%s: no call node types", lang)
		}
		if len(LoopNodeTypes(lang)) == 0 {
			t.Errorf("%s: no loop node types", lang)
		}
		if len(DivisionNodeTypes(lang)) == 0 {
			t.Errorf("%s: no division node types", lang)
		}
	}
}

func TestNestingNodeTypes(t *testing.T) {
	py := NestingNodeTypes(model.LangPython)
	for _, want := range []string{"if_statement", "for_statement", "while_statement", "try_statement", "with_statement"} {
		if !Contains(py, want) {
			t.Errorf("python nesting types missing %s", want)
		}
	}
	if Contains(NestingNodeTypes(model.LangGo), "with_statement") {
		t.Error("go has no resource scopes")
	}
}

func TestDivisionOperators(t *testing.T) {
	if ops := DivisionOperators(model.LangPython); !Contains(ops, "//") {
		t.Errorf("python operators = %v, want floor division", ops)
	}
	if ops := DivisionOperators(model.LangGo); len(ops) != 1 || ops[0] != "/" {
		t.Errorf("go operators = %v", ops)
	}
}
