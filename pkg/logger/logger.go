// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides the leveled logger shared by the CLI and the
// pipeline stages. Components receive a *Logger explicitly at construction;
// there is no package-level global to configure.
package logger

import (
	"io"
	"log"
	"os"
)

// Level controls which messages a Logger emits.
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
	LevelTrace
)

// Logger wraps the standard library logger with level filtering.
type Logger struct {
	*log.Logger
	level Level
}

// Option configures a Logger at construction time.
type Option func(*Logger)

// WithOutput directs log output to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

// WithPrefix sets the prefix prepended to every line.
func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

// WithFlags sets the standard library log flags (timestamps etc).
func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

// WithLevel sets the initial level.
func WithLevel(level Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// New returns a Logger writing to stderr at LevelInfo with timestamps.
func New(options ...Option) *Logger {
	l := &Logger{
		Logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  LevelInfo,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// SetVerbose raises the level to LevelDebug. It never lowers the level,
// so a logger constructed at LevelTrace stays at trace.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose && l.level < LevelDebug {
		l.level = LevelDebug
	}
}

// SetLevel sets the level directly.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Info logs a message at the default level.
func (l *Logger) Info(format string, args ...any) {
	l.printf(LevelInfo, format, args...)
}

// Debug logs a diagnostic message, emitted only in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	if l.level >= LevelDebug {
		l.printf(LevelDebug, format, args...)
	}
}

// Trace logs a high-volume diagnostic message.
func (l *Logger) Trace(format string, args ...any) {
	if l.level >= LevelTrace {
		l.printf(LevelTrace, format, args...)
	}
}

func (l *Logger) printf(level Level, format string, args ...any) {
	var prefix string
	switch level {
	case LevelInfo:
		prefix = "INFO: "
	case LevelDebug:
		prefix = "DEBUG: "
	case LevelTrace:
		prefix = "TRACE: "
	}
	l.Logger.Printf(prefix+format, args...)
}
