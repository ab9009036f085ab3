package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamePattern(t *testing.T) {
	require.NoError(t, Name("variable", "CITY"))
	require.NoError(t, Name("variable", "_abc123"))
	require.NoError(t, Name("dataset", "A"))

	err := Name("variable", "1CITY")
	require.Error(t, err)
	require.Equal(t, "variable name is illegal for SAS", err.Error())

	err = Name("dataset", "TOO_LONG_NAME")
	require.Error(t, err)
	require.Equal(t, "dataset name is illegal for SAS", err.Error())
}

func TestASCII(t *testing.T) {
	require.True(t, ASCII("plain text"))
	require.False(t, ASCII("caf\xc3\xa9"))
}

func TestMaxLen(t *testing.T) {
	require.NoError(t, MaxLen("label", "short", 40))
	err := MaxLen("label", string(make([]byte, 41)), 40)
	require.Error(t, err)
}
