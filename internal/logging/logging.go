// Package logging builds the charmbracelet/log logger for a run.
//
// The TUI owns the terminal, so records only go to a file; without one the
// logger discards everything.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/duedo/internal/config"
	"github.com/idilsaglam/duedo/internal/store"
)

const prefix = "duedo"

// Logger wraps the log file so callers can close it on exit.
type Logger struct {
	*log.Logger
	file *os.File
}

// New opens cfg.File for appending (creating parent dirs) and returns a
// logger writing to it.
func New(cfg config.LogConfig) (*Logger, error) {
	if cfg.File == "" {
		return &Logger{Logger: newLogger(io.Discard, cfg)}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{Logger: newLogger(f, cfg), file: f}, nil
}

// NewWithWriter is New for an arbitrary writer, mainly for tests.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *Logger {
	return &Logger{Logger: newLogger(w, cfg)}
}

func newLogger(w io.Writer, cfg config.LogConfig) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.Level),
		Formatter:       ParseFormatter(cfg.Format),
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Apply updates level and formatter in place, used after a config reload.
func (l *Logger) Apply(cfg config.LogConfig) {
	l.SetLevel(ParseLevel(cfg.Level))
	l.SetFormatter(ParseFormatter(cfg.Format))
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// StoreObserver returns a store subscriber that records every transition
// at debug level.
func (l *Logger) StoreObserver() func(store.Event) {
	return func(ev store.Event) {
		l.Debug("list changed",
			"op", string(ev.Op),
			"id", ev.Item.ID.String(),
			"index", ev.Index,
			"complete", ev.Item.Complete,
			"editing", ev.Item.Editing,
			"version", ev.Version,
		)
	}
}

func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
