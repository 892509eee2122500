// Package testutil provides helpers shared by package tests: temporary
// source trees and golden-file comparison.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates files under a fresh temp directory and returns its path.
// Keys are slash-separated paths relative to the root.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", p, err)
		}
	}
	return root
}

// NormalizeRoot replaces root with $ROOT and uses forward slashes, so
// output that embeds temp paths can be compared against golden files.
func NormalizeRoot(s, root string) string {
	s = replaceAll(s, root, "$ROOT")
	return replaceAll(s, `\`, "/")
}
