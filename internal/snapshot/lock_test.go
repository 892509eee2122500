//go:build !windows

package snapshot

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestAcquireAndReleaseLock(t *testing.T) {
	dir := t.TempDir()

	lock, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, lockFile))
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	pid, err := strconv.Atoi(string(content))
	if err != nil {
		t.Fatalf("lock file should contain PID: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("PID: got %d, want %d", pid, os.Getpid())
	}

	lock.Release()
	if _, err := os.Stat(filepath.Join(dir, lockFile)); !os.IsNotExist(err) {
		t.Error("lock file should be removed after release")
	}
}

func TestAcquireLock_AlreadyLocked(t *testing.T) {
	dir := t.TempDir()

	lock1, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("first AcquireLock failed: %v", err)
	}
	defer lock1.Release()

	lock2, err := AcquireLock(dir)
	if err == nil {
		lock2.Release()
		t.Fatal("second AcquireLock should fail")
	}
	if !strings.Contains(err.Error(), "locked by another process") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRelease_Nil(t *testing.T) {
	var l *Lock
	l.Release()
}
