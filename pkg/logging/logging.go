package logging

import (
	"github.com/go-logr/logr"
)

// Verbosity tiers for the go-logr/logr.Logger this package wraps.
// Reader/Writer log at LevelDebug on header transitions (library
// parsed, library header written) and at LevelTrace on the
// higher-volume per-observation/per-record events.
const (
	LevelInfo  = 0
	LevelDebug = 1
	LevelTrace = 2
)

// NewLogger wraps log for use by a Reader or Writer. A Logger with a
// nil sink discards everything.
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a Logger that discards everything; Reader and
// Writer fall back to this when no options.WithReaderLogger /
// options.WithWriterLogger is supplied.
func DefaultLogger() *Logger {
	return &Logger{log: logr.Discard()}
}

// Logger wraps a logr.Logger with the small, fixed set of calls the
// root xport package makes while walking an XPORT stream's headers
// and observations.
type Logger struct {
	log logr.Logger
}

// Debug logs a header-section transition: library header written,
// library parsed.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(LevelDebug).Info(msg, keysAndValues...)
}

// Info logs at the default verbosity.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

// Trace logs a per-record event: one observation decoded or encoded.
// Too frequent for Debug.
func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(LevelTrace).Info(msg, keysAndValues...)
}

// Error logs a fault: a malformed record, an out-of-range numeric
// value, an I/O failure on the underlying stream.
func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}
