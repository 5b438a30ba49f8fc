// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup()                          // INFO level, from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//	logging.SetupWithOptions(opts)           // level plus optional rotating file
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and, optionally, a rotating log file that
// receives a copy of every record.
type Options struct {
	Level     slog.Level
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(newHandler(os.Stderr, level, true)))
}

// SetupWithOptions configures logging to stderr and, when opts.File is set,
// to a size-rotated file. The returned closer flushes and closes the file.
func SetupWithOptions(opts Options) (io.Closer, error) {
	if opts.File == "" {
		SetupWithLevel(opts.Level)
		return nopCloser{}, nil
	}

	writer, err := NewRotatingWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(newHandler(io.MultiWriter(os.Stderr, writer), opts.Level, false)))
	return writer, nil
}

// NewRotatingWriter returns a lumberjack writer for path, creating its directory.
func NewRotatingWriter(path string, maxSizeMB, maxFiles int) (*lumberjack.Logger, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxFiles,
	}, nil
}

// ParseLevel maps debug, warn and error to their slog levels; anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newHandler(w io.Writer, level slog.Level, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !color,
	})
}
