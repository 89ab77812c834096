// Package logger sets up structured diagnostics using log/slog.
// Records go to stderr and optionally to a rotating log file via lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const FileName = "imgcurator.log"

// Config holds logger configuration options.
type Config struct {
	// LogDir is the directory where log files are stored.
	// If empty, only stderr logging is enabled.
	LogDir string

	// Debug enables debug-level logging. It takes precedence over Verbose.
	Debug bool

	// Verbose lowers the threshold from warnings to informational records.
	Verbose bool

	// JSON enables JSON output format. If false, text format is used.
	JSON bool

	// Console receives the records besides the log file, stderr if nil.
	Console io.Writer
}

func (c Config) level() slog.Level {
	switch {
	case c.Debug:
		return slog.LevelDebug
	case c.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Init initializes the global slog logger with the given configuration.
// The returned function closes the log file and must be called before exiting.
func Init(cfg Config) (closer func() error, err error) {
	var writer io.Writer = os.Stderr
	if cfg.Console != nil {
		writer = cfg.Console
	}
	closer = func() error { return nil }

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return nil, err
		}
		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, FileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		writer = io.MultiWriter(writer, logFile)
		closer = logFile.Close
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.level(),
		AddSource: cfg.Debug,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	slog.SetDefault(slog.New(handler))
	return closer, nil
}
