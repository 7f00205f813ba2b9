package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// LogFileName is the name of the log file inside the log directory.
const LogFileName = "gridwatch.log"

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// sink is the writer shared by a logger and all of its children.
type sink struct {
	mu     sync.Mutex
	closer io.Closer
}

// Logger writes structured JSON log lines. Child loggers created with the
// With* methods share the parent's output. It is safe for concurrent use.
type Logger struct {
	slog *slog.Logger
	sink *sink
}

// NewLogger creates a Logger that writes JSON lines to w, dropping entries
// below level (DEBUG, INFO, WARN or ERROR; anything else means INFO). If w
// is an io.Closer, Close closes it.
func NewLogger(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slogLevel(ParseLevel(level)),
	})
	s := &sink{}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return &Logger{slog: slog.New(handler), sink: s}
}

// NewLoggerWithRotation creates a Logger writing to {logDir}/gridwatch.log
// through a RotatingWriter.
func NewLoggerWithRotation(logDir, level string, config RotationConfig) (*Logger, error) {
	rw, err := NewRotatingWriter(filepath.Join(logDir, LogFileName), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create log writer: %w", err)
	}
	return NewLogger(rw, level), nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSimulation returns a child Logger tagging entries with the simulation ID.
func (l *Logger) WithSimulation(simID string) *Logger {
	return l.child(slog.String("sim_id", simID))
}

// WithStep returns a child Logger tagging entries with the simulation step.
func (l *Logger) WithStep(step int) *Logger {
	return l.child(slog.Int("step", step))
}

// WithComponent returns a child Logger tagging entries with a component name
// such as "session" or "replay".
func (l *Logger) WithComponent(name string) *Logger {
	return l.child(slog.String("component", name))
}

// With returns a child Logger with alternating key-value attributes. Pairs
// whose key is not a string are skipped.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	attrs := make([]slog.Attr, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			attrs = append(attrs, slog.Any(key, args[i+1]))
		}
	}
	return l.child(attrs...)
}

func (l *Logger) child(attrs ...slog.Attr) *Logger {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return &Logger{slog: l.slog.With(args...), sink: l.sink}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Log(context.Background(), slog.LevelError, msg, args...)
}

// Close closes the underlying writer. Closing any child closes the shared
// writer; further calls on any of them are no-ops.
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	c := l.sink.closer
	if c == nil {
		return nil
	}
	l.sink.closer = nil
	if err := c.Close(); err != nil {
		return fmt.Errorf("failed to close log writer: %w", err)
	}
	return nil
}

// NopLogger returns a Logger that discards all log output.
func NopLogger() *Logger {
	return NewLogger(io.Discard, LevelError)
}

// ParseLevel normalizes a level name to one of the Level constants.
// Unrecognized names map to LevelInfo.
func ParseLevel(level string) string {
	switch l := strings.ToUpper(level); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
