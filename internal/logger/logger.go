package logger

import (
	"fmt"
	"io"
	"sync"
)

// Logger defines the interface for logging
type Logger interface {
	Log(format string, args ...interface{})
}

// NoopLogger implements a no-op logger
type NoopLogger struct{}

func (l *NoopLogger) Log(format string, args ...interface{}) {
	// Do nothing
}

// WriterLogger writes one line per message to an io.Writer
type WriterLogger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewWriterLogger creates a logger that writes to w, prefixing every line
func NewWriterLogger(w io.Writer, prefix string) *WriterLogger {
	return &WriterLogger{w: w, prefix: prefix}
}

func (l *WriterLogger) Log(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, l.prefix)
	fmt.Fprintf(l.w, format+"\n", args...)
}

// DefaultLogger is the default logger instance
var DefaultLogger Logger = &NoopLogger{}

// SetLogger sets the default logger
func SetLogger(l Logger) {
	DefaultLogger = l
}

// Log logs a message using the default logger
func Log(format string, args ...interface{}) {
	DefaultLogger.Log(format, args...)
}
