package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// A Logger emits leveled log messages, discarding anything below its
// configured level
type Logger struct {
	level int
	out   *log.Logger
}

// NewLogger produces a Logger writing messages at or above level to w
func NewLogger(w io.Writer, level int) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// Default produces a Logger writing WarnLevel and above to stderr
func Default() *Logger {
	return NewLogger(os.Stderr, WarnLevel)
}

// Logf logs a formatted message at the given level
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.out.Printf("[%s] %s", LogLevelToString(level), fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at DebugLevel
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(DebugLevel, format, args...)
}

// Errorf logs a formatted message at ErrorLevel
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(ErrorLevel, format, args...)
}
