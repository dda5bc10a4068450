package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Setup builds a text slog.Logger writing to w.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open appends to the log file at path, creating parent directories. The
// terminal belongs to the UI, so an empty path discards logs instead of
// falling back to stderr.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return Setup(f, level), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
