package logging

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestStreamLogSinkDefaultsToStdout(t *testing.T) {
	s := NewStreamLogSink(nil, 1, true)
	require.Equal(t, io.Writer(os.Stdout), s.writer)
}

func TestStreamLogSinkEnabled(t *testing.T) {
	s := NewStreamLogSink(&bytes.Buffer{}, 1, true)
	require.True(t, s.Enabled(LevelInfo))
	require.True(t, s.Enabled(LevelDebug))
	require.False(t, s.Enabled(LevelTrace))
}

func TestStreamLogSinkInfoWritesTaggedLine(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, 1, true)
	s.Info(LevelInfo, "library parsed", "dataset", "DEMO")
	output := buf.String()

	require.Contains(t, output, "library parsed")
	require.Contains(t, output, "dataset: DEMO")
	require.Contains(t, output, "[INFO]")
}

func TestStreamLogSinkSuppressesAboveMinVerbosity(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, LevelInfo, true)
	s.Info(LevelDebug, "should not appear", "foo", "bar")
	require.Zero(t, buf.Len())
}

func TestStreamLogSinkError(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, LevelInfo, true)
	err := errors.New("observation truncated")
	s.Error(err, "malformed transport", "offset", 80)
	output := buf.String()

	require.Contains(t, output, "[ERROR]")
	require.Contains(t, output, "malformed transport")
	require.Contains(t, output, "offset: 80")
	require.Contains(t, output, "error: observation truncated")
}

func TestStreamLogSinkWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, 1, true)
	named := s.WithName("xport")
	named.Info(LevelInfo, "test message")
	require.Contains(t, buf.String(), "[xport]")
}

func TestStreamLogSinkChainedWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, 1, true)
	chain := s.WithName("reader").WithName("namestr").(*StreamLogSink)
	chain.Info(LevelInfo, "chained name")
	require.Contains(t, buf.String(), "[reader.namestr]")
}

func TestStreamLogSinkWithValuesPersistAcrossCalls(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, 1, true)
	withVals := s.WithValues("dataset", "DEMO")
	withVals.Info(LevelInfo, "record decoded", "offset", 0)
	require.Contains(t, buf.String(), "dataset: DEMO")
	require.Contains(t, buf.String(), "offset: 0")
}

func TestStreamLogSinkVReturnsSameVerbosityFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, 1, true)
	v := s.V(LevelDebug)
	v.Info(LevelDebug, "verbose log")
	require.Contains(t, buf.String(), "[DEBUG]")
}

func TestStreamLogSinkNonStringKeyIsNumbered(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewStreamLogSink(buf, 1, true)
	s.Info(LevelInfo, "non-string key", 123, "value")
	require.Contains(t, buf.String(), "key0: value")
}

func TestStreamLogSinkInitSetsCallDepth(t *testing.T) {
	s := NewStreamLogSink(&bytes.Buffer{}, 1, true)
	s.Init(logr.RuntimeInfo{CallDepth: 5})
	require.Equal(t, 5, s.callDepth)
}

func TestNewStreamLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewStreamLogger(buf, 1, true)
	logger.Info("logger ready", "testKey", "testValue")
	require.Contains(t, buf.String(), "logger ready")
}
