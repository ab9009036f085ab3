package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrictnessString(t *testing.T) {
	require.Equal(t, "Basic", Basic.String())
	require.Equal(t, "FDASubmission", FDASubmission.String())
	require.Equal(t, "Unknown", Strictness(99).String())
}
