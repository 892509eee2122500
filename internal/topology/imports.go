package topology

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"coderecon/internal/model"
)

// importPatterns capture the imported module in group 1.
var importPatterns = map[model.Language][]*regexp.Regexp{
	model.LangPython: {
		regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\b`),
		regexp.MustCompile(`^\s*import\s+([\w.]+(?:\s*,\s*[\w.]+)*)`),
	},
	model.LangJavaScript: jsImports,
	model.LangTypeScript: jsImports,
	model.LangTSX:        jsImports,
	model.LangGo: {
		regexp.MustCompile(`^\s*import\s+(?:[\w.]+\s+)?"([^"]+)"`),
	},
	model.LangJava: {
		regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)`),
	},
	model.LangKotlin: {
		regexp.MustCompile(`^\s*import\s+([\w.]+)`),
	},
	model.LangRust: {
		regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)`),
		regexp.MustCompile(`^\s*extern\s+crate\s+(\w+)`),
	},
}

var jsImports = []*regexp.Regexp{
	regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`export\s+.*?from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

// goBlockImport matches one line of a Go import ( ... ) block.
var goBlockImport = regexp.MustCompile(`^\s*(?:[\w.]+\s+)?"([^"]+)"`)

// ImportCounter counts the external imports of a file.
type ImportCounter interface {
	ExternalImports(path string) int
}

// ImportScanner counts distinct top-level imports matching a marker set.
type ImportScanner struct {
	markers map[string]bool
}

// NewImportScanner creates a scanner for the given markers.
func NewImportScanner(markers []string) *ImportScanner {
	s := &ImportScanner{markers: make(map[string]bool, len(markers))}
	for _, m := range markers {
		s.markers[strings.ToLower(m)] = true
	}
	return s
}

// ExternalImports reads path and counts its distinct external imports.
// Unreadable files and unsupported languages count zero.
func (s *ImportScanner) ExternalImports(path string) int {
	lang, ok := model.LanguageFromExtension(filepath.Ext(path))
	if !ok {
		return 0
	}
	if _, ok := importPatterns[lang]; !ok {
		return 0
	}

	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	var imports []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	inBlock := false
	for scanner.Scan() {
		line := scanner.Text()
		if lang == model.LangGo {
			trimmed := strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(trimmed, "import ("):
				inBlock = true
				continue
			case inBlock && strings.HasPrefix(trimmed, ")"):
				inBlock = false
				continue
			case inBlock:
				if m := goBlockImport.FindStringSubmatch(line); m != nil {
					imports = append(imports, m[1])
				}
				continue
			}
		}
		imports = append(imports, ScanLine(lang, line)...)
	}
	return s.Count(imports)
}

// Count returns how many distinct top-level modules in imports are markers.
func (s *ImportScanner) Count(imports []string) int {
	seen := make(map[string]bool)
	for _, imp := range imports {
		top := TopModule(imp)
		if top != "" && s.markers[top] {
			seen[top] = true
		}
	}
	return len(seen)
}

// ScanLine returns the modules imported on one source line.
func ScanLine(lang model.Language, line string) []string {
	var out []string
	for _, re := range importPatterns[lang] {
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			for _, part := range strings.Split(m[1], ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}

// TopModule returns the first component of an import path, lowercased:
// "requests.adapters" → "requests", "github.com/x/y" → "github",
// "@aws-sdk/client-s3" → "@aws-sdk". Relative imports return "".
func TopModule(imp string) string {
	imp = strings.TrimSpace(imp)
	if imp == "" || strings.HasPrefix(imp, ".") || strings.HasPrefix(imp, "/") {
		return ""
	}
	end := strings.IndexAny(imp, "./:")
	if end == 0 {
		return ""
	}
	if end > 0 {
		imp = imp[:end]
	}
	return strings.ToLower(imp)
}
