package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	reconerrors "coderecon/internal/errors"
	"coderecon/internal/paths"
)

// Store keeps the current analysis and the one it replaced.
type Store struct {
	dir string
}

// NewStore creates a store for a scan root. stateDir defaults to .coderecon.
func NewStore(root, stateDir string) *Store {
	return &Store{dir: paths.StateDir(root, stateDir)}
}

// NewStoreAt creates a store in an explicit directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the state directory.
func (s *Store) Dir() string { return s.dir }

// CurrentPath returns the path of the current snapshot.
func (s *Store) CurrentPath() string {
	return filepath.Join(s.dir, paths.SnapshotFile)
}

// PreviousPath returns the path of the previous snapshot.
func (s *Store) PreviousPath() string {
	return filepath.Join(s.dir, paths.PreviousSnapshotFile)
}

// Save writes a as the current snapshot. The existing current snapshot
// becomes the previous one; older snapshots are discarded.
func (s *Store) Save(a *Analysis) error {
	lock, err := AcquireLock(s.dir)
	if err != nil {
		return err
	}
	defer lock.Release()

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}

	tmpPath := s.CurrentPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing analysis: %w", err)
	}

	if _, err := os.Stat(s.CurrentPath()); err == nil {
		if err := os.Rename(s.CurrentPath(), s.PreviousPath()); err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("rotating previous analysis: %w", err)
		}
	}

	if err := os.Rename(tmpPath, s.CurrentPath()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming analysis: %w", err)
	}
	return nil
}

// Load reads the current snapshot.
func (s *Store) Load() (*Analysis, error) {
	return load(s.CurrentPath())
}

// LoadPrevious reads the previous snapshot.
func (s *Store) LoadPrevious() (*Analysis, error) {
	return load(s.PreviousPath())
}

// HasPrevious reports whether a previous snapshot exists.
func (s *Store) HasPrevious() bool {
	_, err := os.Stat(s.PreviousPath())
	return err == nil
}

func load(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, reconerrors.New(reconerrors.SnapshotMissing, "no analysis at "+path, err)
		}
		return nil, fmt.Errorf("reading analysis: %w", err)
	}

	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, reconerrors.New(reconerrors.SnapshotCorrupt, "cannot parse "+path, err)
	}
	a.normalize()
	return &a, nil
}
