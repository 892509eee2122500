//go:build windows

package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const lockFile = "analysis.lock"

// Lock is a best-effort lock on a state directory. Windows has no flock,
// so concurrent writers are not excluded.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock writes a PID file in dir.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	path := filepath.Join(dir, lockFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("writing PID to lock file: %w", err)
	}
	return &Lock{path: path, file: file}, nil
}

// Release removes the lock file.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
	_ = os.Remove(l.path)
	l.file = nil
}
