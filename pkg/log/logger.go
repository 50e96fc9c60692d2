package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sort"
	"strings"
	"sync/atomic"
)

// Level controls which messages a Logger emits
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Fields carries structured key/value context for a log line
type Fields map[string]interface{}

// Logger provides leveled logging with optional structured fields.
// This abstraction allows swapping logging implementations.
type Logger interface {
	// Error logs an error message
	Error(args ...interface{})

	// Errorf logs a formatted error message
	Errorf(format string, args ...interface{})

	// Warn logs a warning message
	Warn(args ...interface{})

	// Warnf logs a formatted warning message
	Warnf(format string, args ...interface{})

	// Info logs an informational message
	Info(args ...interface{})

	// Infof logs a formatted informational message
	Infof(format string, args ...interface{})

	// Debug logs a debug message
	Debug(args ...interface{})

	// Debugf logs a formatted debug message
	Debugf(format string, args ...interface{})

	// WithFields returns a Logger that appends the given fields to every line
	WithFields(fields Fields) Logger

	// SetLevel sets the minimum level emitted
	SetLevel(level Level)
}

// defaultLogger implements Logger using Go's standard log package
type defaultLogger struct {
	errorLogger *stdlog.Logger
	warnLogger  *stdlog.Logger
	infoLogger  *stdlog.Logger
	debugLogger *stdlog.Logger
	level       *int32
	fields      Fields
}

// NewDefaultLogger creates a Logger writing to stderr/stdout at LevelInfo
func NewDefaultLogger() Logger {
	return NewWithWriters(os.Stdout, os.Stderr, LevelInfo)
}

// NewWithWriters creates a Logger with explicit output streams, useful for
// tests and for redirecting library logs.
func NewWithWriters(out, errOut io.Writer, level Level) Logger {
	lvl := int32(level)
	return &defaultLogger{
		errorLogger: stdlog.New(errOut, "[ERROR] ", stdlog.LstdFlags),
		warnLogger:  stdlog.New(errOut, "[WARN] ", stdlog.LstdFlags),
		infoLogger:  stdlog.New(out, "[INFO] ", stdlog.LstdFlags),
		debugLogger: stdlog.New(out, "[DEBUG] ", stdlog.LstdFlags),
		level:       &lvl,
		fields:      nil,
	}
}

func (l *defaultLogger) enabled(level Level) bool {
	return level >= Level(atomic.LoadInt32(l.level))
}

// suffix renders the attached fields as " k=v" pairs in key order
func (l *defaultLogger) suffix() string {
	if len(l.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, l.fields[k])
	}
	return b.String()
}

func (l *defaultLogger) output(logger *stdlog.Logger, msg string) {
	logger.Output(4, msg+l.suffix())
}

// Error implements Logger interface
func (l *defaultLogger) Error(args ...interface{}) {
	if l.enabled(LevelError) {
		l.output(l.errorLogger, fmt.Sprint(args...))
	}
}

// Errorf implements Logger interface
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	if l.enabled(LevelError) {
		l.output(l.errorLogger, fmt.Sprintf(format, args...))
	}
}

// Warn implements Logger interface
func (l *defaultLogger) Warn(args ...interface{}) {
	if l.enabled(LevelWarn) {
		l.output(l.warnLogger, fmt.Sprint(args...))
	}
}

// Warnf implements Logger interface
func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	if l.enabled(LevelWarn) {
		l.output(l.warnLogger, fmt.Sprintf(format, args...))
	}
}

// Info implements Logger interface
func (l *defaultLogger) Info(args ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(l.infoLogger, fmt.Sprint(args...))
	}
}

// Infof implements Logger interface
func (l *defaultLogger) Infof(format string, args ...interface{}) {
	if l.enabled(LevelInfo) {
		l.output(l.infoLogger, fmt.Sprintf(format, args...))
	}
}

// Debug implements Logger interface
func (l *defaultLogger) Debug(args ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(l.debugLogger, fmt.Sprint(args...))
	}
}

// Debugf implements Logger interface
func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	if l.enabled(LevelDebug) {
		l.output(l.debugLogger, fmt.Sprintf(format, args...))
	}
}

// WithFields implements Logger interface
// The returned Logger shares outputs and level with the receiver.
func (l *defaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	clone := *l
	clone.fields = merged
	return &clone
}

// SetLevel implements Logger interface
func (l *defaultLogger) SetLevel(level Level) {
	atomic.StoreInt32(l.level, int32(level))
}

// ParseLevel maps a config string to a Level; unknown strings map to LevelInfo
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
