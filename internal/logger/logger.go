// Package logger is the leveled logger shared by the store, the coordinator
// and the transports. Safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelOff Level = iota
	// LevelInfo enables info, warn and error output.
	LevelInfo
	// LevelDebug additionally enables debug output.
	LevelDebug
)

type Logger struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger writing to out, or os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	flags := log.LstdFlags
	return &Logger{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

// Discard is a logger with all output disabled, handy in tests.
func Discard() *Logger {
	return New(LevelOff, io.Discard)
}

func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off", "none":
		return LevelOff, nil
	case "", "info", "warn", "error":
		return LevelInfo, nil
	case "debug", "trace":
		return LevelDebug, nil
	}
	return LevelOff, fmt.Errorf("unknown log level %q", name)
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) output(min Level, dst *log.Logger, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= min {
		dst.Output(3, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Debug(format string, args ...any) {
	l.output(LevelDebug, l.debug, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.output(LevelInfo, l.info, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.output(LevelInfo, l.warn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.output(LevelInfo, l.errLog, format, args...)
}
