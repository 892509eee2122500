package model

import "strings"

// Language identifies a source language by its canonical name.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
	LangRuby       Language = "ruby"
	LangPHP        Language = "php"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangSwift      Language = "swift"
	LangObjC       Language = "objective-c"
	LangScala      Language = "scala"
	LangPerl       Language = "perl"
	LangShell      Language = "shell"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangXML        Language = "xml"
	LangJSON       Language = "json"
	LangYAML       Language = "yaml"
)

var extensionLanguages = map[string]Language{
	".go":    LangGo,
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".mjs":   LangJavaScript,
	".cjs":   LangJavaScript,
	".ts":    LangTypeScript,
	".mts":   LangTypeScript,
	".cts":   LangTypeScript,
	".tsx":   LangTSX,
	".py":    LangPython,
	".rs":    LangRust,
	".java":  LangJava,
	".kt":    LangKotlin,
	".kts":   LangKotlin,
	".rb":    LangRuby,
	".php":   LangPHP,
	".c":     LangC,
	".h":     LangC,
	".cpp":   LangCPP,
	".cc":    LangCPP,
	".hpp":   LangCPP,
	".cs":    LangCSharp,
	".swift": LangSwift,
	".m":     LangObjC,
	".scala": LangScala,
	".pl":    LangPerl,
	".sh":    LangShell,
	".html":  LangHTML,
	".css":   LangCSS,
	".xml":   LangXML,
	".json":  LangJSON,
	".yml":   LangYAML,
	".yaml":  LangYAML,
}

// LanguageFromExtension maps a file extension (with dot, any case) to a language.
func LanguageFromExtension(ext string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(ext)]
	return lang, ok
}

// IsMarkup reports languages that carry no functions.
func (l Language) IsMarkup() bool {
	switch l {
	case LangHTML, LangCSS, LangXML, LangJSON, LangYAML:
		return true
	}
	return false
}
