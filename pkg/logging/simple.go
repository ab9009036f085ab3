package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
)

// Colored tags for each verbosity tier, used when a StreamLogSink is
// built with color enabled.
var (
	infoTag  = color.New(color.FgGreen).SprintFunc()
	debugTag = color.New(color.FgCyan).SprintFunc()
	traceTag = color.New(color.FgYellow).SprintFunc()
	errorTag = color.New(color.FgRed).SprintFunc()
)

// StreamLogSink implements logr.LogSink by writing one line per
// event plus indented key/value pairs, optionally with colored
// [INFO]/[DEBUG]/[TRACE]/[ERROR] tags — a console-friendly sink for
// following a Reader or Writer's header and observation traffic
// without a structured-logging backend.
type StreamLogSink struct {
	writer       io.Writer
	minVerbosity int
	name         string
	keyValues    []interface{}
	mutex        sync.Mutex
	callDepth    int
	useColor     bool
}

// NewStreamLogSink creates a StreamLogSink. If writer is nil, it
// defaults to os.Stdout. minVerbosity is the highest verbosity level
// that is logged; Info calls at a greater level are dropped (see
// LevelInfo/LevelDebug/LevelTrace).
func NewStreamLogSink(writer io.Writer, minVerbosity int, useColor bool) *StreamLogSink {
	if writer == nil {
		writer = os.Stdout
	}
	return &StreamLogSink{
		writer:       writer,
		minVerbosity: minVerbosity,
		keyValues:    []interface{}{},
		useColor:     useColor,
	}
}

// Init captures runtime call-depth information from logr.
func (s *StreamLogSink) Init(info logr.RuntimeInfo) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.callDepth = info.CallDepth
}

// Enabled reports whether level is at or below the sink's configured
// verbosity.
func (s *StreamLogSink) Enabled(level int) bool {
	return level <= s.minVerbosity
}

// Info logs a non-error event.
func (s *StreamLogSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if !s.Enabled(level) {
		return
	}
	s.log(false, level, msg, keysAndValues...)
}

// Error logs a fault. Verbosity filtering does not apply: a fault is
// always worth printing.
func (s *StreamLogSink) Error(err error, msg string, keysAndValues ...interface{}) {
	allKeysAndValues := append(keysAndValues, "error", err)
	s.log(true, 0, msg, allKeysAndValues...)
}

// WithValues returns a sink that prepends the given key/value pairs
// to every subsequent call.
func (s *StreamLogSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	newKeyValues := append(append([]interface{}{}, s.keyValues...), keysAndValues...)
	return &StreamLogSink{
		writer:       s.writer,
		minVerbosity: s.minVerbosity,
		name:         s.name,
		keyValues:    newKeyValues,
		useColor:     s.useColor,
	}
}

// WithName returns a sink whose messages are prefixed with name,
// dotted onto any existing name.
func (s *StreamLogSink) WithName(name string) logr.LogSink {
	newName := name
	if s.name != "" {
		newName = fmt.Sprintf("%s.%s", s.name, name)
	}
	return &StreamLogSink{
		writer:       s.writer,
		minVerbosity: s.minVerbosity,
		name:         newName,
		keyValues:    append([]interface{}{}, s.keyValues...),
		useColor:     s.useColor,
	}
}

// V returns a sink at the given verbosity. logr calls this once per
// V(n) on the wrapping Logger; StreamLogSink's own filtering happens
// in Enabled, so this just threads the rest of the sink's state
// through unchanged.
func (s *StreamLogSink) V(level int) logr.LogSink {
	return &StreamLogSink{
		writer:       s.writer,
		minVerbosity: s.minVerbosity,
		name:         s.name,
		keyValues:    append([]interface{}{}, s.keyValues...),
		useColor:     s.useColor,
	}
}

func (s *StreamLogSink) log(isError bool, level int, msg string, keysAndValues ...interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var label string
	switch {
	case isError:
		label = s.tag("[ERROR]", errorTag)
	case level == LevelInfo:
		label = s.tag("[INFO]", infoTag)
	case level == LevelDebug:
		label = s.tag("[DEBUG]", debugTag)
	case level == LevelTrace:
		label = s.tag("[TRACE]", traceTag)
	default:
		label = fmt.Sprintf("[LEVEL %d] ", level)
	}

	fullMsg := msg
	if s.name != "" {
		fullMsg = fmt.Sprintf("[%s] %s", s.name, msg)
	}
	fmt.Fprintln(s.writer, label+fullMsg)

	all := append(append([]interface{}{}, s.keyValues...), keysAndValues...)
	for i := 0; i+1 < len(all); i += 2 {
		key, ok := all[i].(string)
		if !ok {
			key = fmt.Sprintf("key%d", i/2)
		}
		fmt.Fprintf(s.writer, "  %s: %v\n", key, all[i+1])
	}
}

func (s *StreamLogSink) tag(text string, colorize func(a ...interface{}) string) string {
	if !s.useColor {
		return text + " "
	}
	return colorize(text) + " "
}

// NewStreamLogger builds a logr.Logger backed by a StreamLogSink. If
// writer is nil, it defaults to os.Stdout.
func NewStreamLogger(writer io.Writer, minVerbosity int, useColor bool) logr.Logger {
	return logr.New(NewStreamLogSink(writer, minVerbosity, useColor))
}
