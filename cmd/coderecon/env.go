package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"coderecon/internal/config"
	"coderecon/internal/slogutil"
	"coderecon/internal/snapshot"
)

// env is the per-command setup shared by every subcommand.
type env struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
	store  *snapshot.Store
	closer io.Closer
}

// newEnv resolves root, loads its config and opens the logger and store.
func newEnv(root string) (*env, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(abs)
	if err != nil {
		return nil, err
	}

	logger, closer, err := slogutil.Setup(abs, cfg.Logging, os.Stderr, verbosity, quiet)
	if err != nil {
		logger.Warn("log file unavailable", "error", err)
	}

	stateDir := cfg.StateDir
	if stateDirFlag != "" {
		stateDir = stateDirFlag
	}

	return &env{
		root:   abs,
		cfg:    cfg,
		logger: logger,
		store:  snapshot.NewStore(abs, stateDir),
		closer: closer,
	}, nil
}

func (e *env) Close() {
	_ = e.closer.Close()
}

// loadCurrent reads the latest snapshot.
func (e *env) loadCurrent() (*snapshot.Analysis, error) {
	a, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded snapshot", "path", e.store.CurrentPath(), "scan_id", a.ScanID)
	return a, nil
}

// newContext returns a context cancelled on interrupt.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
