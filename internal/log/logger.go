package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger writes nplay's own records and the lines the playback engine sends into one JSON log file.  Engine lines
// carry source=native so the two can be told apart.
type Logger struct {
	logger       *slog.Logger
	native       *slog.Logger
	file         *os.File
	traceEnabled bool
}

// Config contains logging information used to set up the logging framework
type Config struct {
	// Log Level.  One of: trace, debug, info, warn, error
	Level string
	// Path to the file to log into
	FilePath string
}

func New(config Config) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	base := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: parseLogLevel(config.Level)}))

	return &Logger{
		logger:       base,
		native:       base.With("source", "native"),
		file:         file,
		traceEnabled: strings.EqualFold(config.Level, "trace"),
	}, nil
}

// Close the log file
func (l *Logger) Close() {
	if err := l.file.Close(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error closing logger: %v\n", err)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Trace logs at debug with a TRACE: prefix when the configured level is trace, and drops the record otherwise
func (l *Logger) Trace(msg string, args ...any) {
	if l.traceEnabled {
		l.logger.Debug("TRACE: "+msg, args...)
	}
}

// Native records one engine log line.  level is the engine's own prefix ("info", "error" or "debug"); anything
// else is logged at info.
func (l *Logger) Native(level, line string) {
	l.native.Log(context.Background(), nativeLevel(level), line)
}

func nativeLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// parseLogLevel converts the configured level into slog's.  trace maps to debug since Trace is filtered here rather
// than by slog.  Unknown names fall back to info.
func parseLogLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
