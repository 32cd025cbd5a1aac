// Package logging builds the daemon's JSON slog logger. Records go to the
// console and, when a path is set, are appended to a log file as well.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is a slog.Logger whose level can change at runtime.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// New logs to console, and also to path when it is not empty. Parent
// directories of path are created.
func New(console io.Writer, path, level string) (*Logger, error) {
	l := &Logger{level: &slog.LevelVar{}}
	l.level.Set(ParseLevel(level))

	w := console
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		w = io.MultiWriter(console, f)
	}

	l.Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     l.level,
		AddSource: false,
	}))
	return l, nil
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel changes the minimum level of all records.
func (l *Logger) SetLevel(raw string) {
	l.level.Set(ParseLevel(raw))
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
