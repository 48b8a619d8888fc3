package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var globalLogger = zerolog.Nop()

// Init configures the global logger. The TUI owns stdout, so output goes to
// path; an empty path discards everything. The returned closer releases the
// log file.
func Init(level, path string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		globalLogger = zerolog.Nop()
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	globalLogger = New(f, lvl)
	return f, nil
}

// New builds a logger in the application's console format.
func New(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "studytrackr").
		Logger()
}

// Global returns the global logger.
func Global() *zerolog.Logger {
	return &globalLogger
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return globalLogger.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
