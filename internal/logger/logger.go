// Package logger builds the process logger from config so every command
// formats logs the same way.
package logger

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// New returns a slog logger writing to w in "text" or "json" format.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// ToFile is used by the terminal UI, which owns stdout. The returned closer
// must be closed on exit.
func ToFile(path string, level slog.Level, format string) (*slog.Logger, io.Closer, error) {
	f, err := tea.LogToFile(path, "antipode")
	if err != nil {
		return nil, nil, err
	}
	return New(f, level, format), f, nil
}

// Discard drops everything; used when no log file is configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
