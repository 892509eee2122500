// Package discovery walks a source tree and returns the files a scan should visit.
package discovery

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"coderecon/internal/config"
	reconerrors "coderecon/internal/errors"
	"coderecon/internal/model"
	"coderecon/internal/slogutil"
)

// Walker applies a discovery configuration to a root.
type Walker struct {
	extensions  map[string]bool
	excludeDirs map[string]bool
	globs       []string
	logger      *slog.Logger
}

// NewWalker builds a walker; extensions are matched case-insensitively.
func NewWalker(cfg config.DiscoveryConfig, logger *slog.Logger) *Walker {
	w := &Walker{
		extensions:  make(map[string]bool, len(cfg.Extensions)),
		excludeDirs: make(map[string]bool, len(cfg.ExcludeDirs)),
		logger:      slogutil.OrDiscard(logger),
	}
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extensions[ext] = true
	}
	for _, d := range cfg.ExcludeDirs {
		w.excludeDirs[d] = true
	}
	for _, g := range cfg.ExcludeGlobs {
		if !doublestar.ValidatePattern(g) {
			w.logger.Warn("ignoring invalid exclude glob", "pattern", g)
			continue
		}
		w.globs = append(w.globs, g)
	}
	return w
}

// Discover is shorthand for NewWalker(cfg, logger).Walk(root).
func Discover(root string, cfg config.DiscoveryConfig, logger *slog.Logger) ([]model.FileRecord, error) {
	return NewWalker(cfg, logger).Walk(root)
}

// Walk returns every allowed source file under root, sorted by path.
// A missing root yields an empty list; a root that exists but cannot be
// listed yields ROOT_UNREADABLE. Unreadable subdirectories are skipped.
func (w *Walker) Walk(root string) ([]model.FileRecord, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, reconerrors.New(reconerrors.RootUnreadable, "cannot resolve root", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Warn("scan root does not exist", "root", abs)
			return []model.FileRecord{}, nil
		}
		return nil, reconerrors.New(reconerrors.RootUnreadable, "cannot stat root "+abs, err)
	}

	if !info.IsDir() {
		if !w.allowed(abs) {
			return []model.FileRecord{}, nil
		}
		return []model.FileRecord{w.record(abs)}, nil
	}

	records := make([]model.FileRecord, 0, 64)
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return reconerrors.New(reconerrors.RootUnreadable, "cannot list root "+abs, err)
			}
			w.logger.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := relSlash(abs, path)
		if d.IsDir() {
			if path != abs && (w.excludeDirs[d.Name()] || w.globExcluded(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		// symlinks and other irregular entries are never followed
		if !d.Type().IsRegular() {
			return nil
		}
		if !w.allowed(path) || w.globExcluded(rel) {
			return nil
		}
		records = append(records, w.record(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records, nil
}

func (w *Walker) allowed(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *Walker) globExcluded(rel string) bool {
	for _, g := range w.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

func (w *Walker) record(path string) model.FileRecord {
	loc, err := CountLines(path)
	if err != nil {
		w.logger.Debug("cannot count lines", "path", path, "error", err)
	}
	return model.FileRecord{
		Path:      path,
		Extension: strings.ToLower(filepath.Ext(path)),
		LOC:       loc,
	}
}

// CountLines counts lines in a file; a final line without a newline counts.
func CountLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return countLines(data), nil
}

func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
