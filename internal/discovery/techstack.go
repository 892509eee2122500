package discovery

import (
	"sort"

	"coderecon/internal/model"
)

// LanguageCount is one entry of a tech stack.
type LanguageCount struct {
	Language string `json:"language" yaml:"language"`
	Files    int    `json:"files" yaml:"files"`
}

// TechStack counts files per language, most common first, ties by name.
func TechStack(files []model.FileRecord) []LanguageCount {
	counts := make(map[string]int)
	for _, f := range files {
		lang, ok := model.LanguageFromExtension(f.Extension)
		if !ok {
			continue
		}
		counts[string(lang)]++
	}

	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Files: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Language < out[j].Language
	})
	return out
}
