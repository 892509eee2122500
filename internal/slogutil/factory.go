package slogutil

import (
	"io"
	"log/slog"
	"path/filepath"

	"coderecon/internal/config"
)

// Setup builds the CLI logger: stderr at the verbosity-derived level, plus an
// optional rotating log file at the configured level.
// The returned closer is never nil.
func Setup(root string, cfg config.LoggingConfig, stderr io.Writer, verbosity int, quiet bool) (*slog.Logger, io.Closer, error) {
	console := NewReconHandler(stderr, &slog.HandlerOptions{Level: LevelFromVerbosity(verbosity, quiet)})
	if cfg.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	path := cfg.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	rf, err := OpenRotatingFile(path, ParseSize(cfg.MaxSize), cfg.MaxBackups)
	if err != nil {
		return slog.New(console), nopCloser{}, err
	}

	file := NewReconHandler(rf, &slog.HandlerOptions{Level: LevelFromString(cfg.Level)})
	return slog.New(NewTeeHandler(console, file)), rf, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
