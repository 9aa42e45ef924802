// Package logging sets up the client logger. The UI owns the terminal,
// so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open creates a JSON slog logger writing to path. The returned closer
// must be called on shutdown.
func Open(path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, file, nil
}

// Discard returns a logger that drops everything. Used in tests and as
// a fallback when the log file cannot be opened.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
