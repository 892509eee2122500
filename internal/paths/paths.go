package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// SnapshotFile is the current analysis inside the state dir
	SnapshotFile = "analysis.json"
	// PreviousSnapshotFile is the analysis it replaced
	PreviousSnapshotFile = "analysis_previous.json"
)

// StateDir resolves the state directory for a scan root.
// An absolute stateDir is used as-is.
func StateDir(root, stateDir string) string {
	if stateDir == "" {
		stateDir = ".coderecon"
	}
	if filepath.IsAbs(stateDir) {
		return stateDir
	}
	return filepath.Join(root, stateDir)
}

// EnsureStateDir creates the state directory if needed.
func EnsureStateDir(root, stateDir string) (string, error) {
	dir := StateDir(root, stateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// CanonicalizePath converts an absolute path to a root-relative slash path.
// Symlinks are resolved when the path exists.
func CanonicalizePath(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		resolved = absolutePath
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		rootResolved = root
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsWithinRoot checks if a path is within root
func IsWithinRoot(path string, root string) bool {
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}

// RelOrSelf returns path relative to root for display, or path unchanged
// when it cannot be made relative.
func RelOrSelf(path, root string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Segments splits a path into its slash-separated components.
func Segments(path string) []string {
	clean := strings.Trim(filepath.ToSlash(path), "/")
	if clean == "" {
		return nil
	}
	return strings.Split(clean, "/")
}

// HasSegment reports whether any component of path equals one of names.
func HasSegment(path string, names []string) bool {
	for _, seg := range Segments(path) {
		for _, n := range names {
			if seg == n {
				return true
			}
		}
	}
	return false
}

// IsUnder reports whether path equals dir or lies beneath it.
func IsUnder(path, dir string) bool {
	p := filepath.ToSlash(filepath.Clean(path))
	d := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(dir)), "/")
	if d == "." || d == "" {
		return true
	}
	return p == d || strings.HasPrefix(p, d+"/")
}
