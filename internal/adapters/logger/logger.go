// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TopPano/providence-engine/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       *sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
	args     []any
}

// New creates a new Logger writing human-readable records to stderr.
func New() ports.Logger {
	return newLogger(os.Stderr)
}

// NewWithOutput creates a Logger writing human-readable records to w.
func NewWithOutput(w io.Writer) *Logger {
	return newLogger(w)
}

func newLogger(w io.Writer) *Logger {
	l := &Logger{
		mu:     &sync.RWMutex{},
		level:  &slog.LevelVar{},
		output: w,
	}
	l.rebuild()
	return l
}

// rebuild replaces the slog handler. Callers must hold mu for writing,
// except during construction.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}

	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = slog.NewTextHandler(l.output, opts)
	}
	l.logger = slog.New(handler).With(l.args...)
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and text records.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLevel parses level ("debug", "info", "warn", "error") and applies it.
// Unknown values leave the level unchanged.
func (l *Logger) SetLevel(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return
	}
	l.level.Set(lvl)
}

// With returns a logger sharing this logger's output that adds args to every record.
func (l *Logger) With(args ...any) ports.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	child := &Logger{
		mu:       l.mu,
		level:    l.level,
		jsonMode: l.jsonMode,
		output:   l.output,
		args:     append(append([]any{}, l.args...), args...),
	}
	child.rebuild()
	return child
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatError(err))
}

// formatError renders the error chain as a main message followed by its causes.
func formatError(err error) string {
	messages := collectMessages(err)

	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		if i == 0 {
			lines = append(lines, parts...)
			continue
		}
		if i == 1 {
			lines = append(lines, "caused by:")
		}
		for _, p := range parts {
			lines = append(lines, "  "+p)
		}
	}
	return strings.Join(lines, "\n")
}

func collectMessages(err error) []string {
	var messages []string
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}
	return messages
}
