package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateDir(t *testing.T) {
	root := filepath.FromSlash("/srv/app")

	if got := StateDir(root, ""); got != filepath.Join(root, ".coderecon") {
		t.Errorf("StateDir(default) = %q", got)
	}
	if got := StateDir(root, "state"); got != filepath.Join(root, "state") {
		t.Errorf("StateDir(relative) = %q", got)
	}
	abs := filepath.Join(t.TempDir(), "elsewhere")
	if got := StateDir(root, abs); got != abs {
		t.Errorf("StateDir(absolute) = %q, want %q", got, abs)
	}
}

func TestEnsureStateDir(t *testing.T) {
	root := t.TempDir()
	dir, err := EnsureStateDir(root, "")
	if err != nil {
		t.Fatalf("EnsureStateDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("state dir not created: %v", err)
	}
}

func TestCanonicalizePath(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "pkg", "a.go")

	got, err := CanonicalizePath(file, root)
	if err != nil {
		t.Fatalf("CanonicalizePath() error = %v", err)
	}
	if got != "pkg/a.go" {
		t.Errorf("CanonicalizePath() = %q, want pkg/a.go", got)
	}
	if !IsWithinRoot(file, root) {
		t.Error("file should be within root")
	}
	if IsWithinRoot(filepath.Dir(root), root) {
		t.Error("parent should not be within root")
	}
}

func TestRelOrSelf(t *testing.T) {
	root := filepath.FromSlash("/srv/app")
	if got := RelOrSelf(filepath.Join(root, "core", "x.py"), root); got != "core/x.py" {
		t.Errorf("RelOrSelf() = %q", got)
	}
	if got := RelOrSelf("x.py", ""); got != "x.py" {
		t.Errorf("RelOrSelf(no root) = %q", got)
	}
}

func TestHasSegment(t *testing.T) {
	tests := []struct {
		path  string
		names []string
		want  bool
	}{
		{"/repo/app/models/user.py", []string{"models"}, true},
		{"/repo/app/modelsx/user.py", []string{"models"}, false},
		{"/repo/tests/test_x.py", []string{"test", "tests"}, true},
		{"", []string{"a"}, false},
	}
	for _, tt := range tests {
		if got := HasSegment(tt.path, tt.names); got != tt.want {
			t.Errorf("HasSegment(%q, %v) = %v, want %v", tt.path, tt.names, got, tt.want)
		}
	}
}

func TestIsUnder(t *testing.T) {
	if !IsUnder("/repo/src/a.go", "/repo/src") {
		t.Error("file in dir should be under it")
	}
	if !IsUnder("/repo/src", "/repo/src/") {
		t.Error("dir should be under itself")
	}
	if IsUnder("/repo/srcx/a.go", "/repo/src") {
		t.Error("sibling prefix must not match")
	}
	if !IsUnder("anything", ".") {
		t.Error("dot matches everything")
	}
}
