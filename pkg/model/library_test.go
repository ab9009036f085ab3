package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLibraryDescriptionRequiresADataset(t *testing.T) {
	_, err := NewLibraryDescription(LibrarySpec{}, Basic)
	require.Error(t, err)
}

func TestNewLibraryDescriptionRoundTrip(t *testing.T) {
	dataset, err := NewDatasetDescription(DatasetSpec{Name: "DEMO"}, Basic)
	require.NoError(t, err)

	lib, err := NewLibraryDescription(LibrarySpec{
		Dataset:          dataset,
		SourceOS:         "LINUX",
		SourceSASVersion: "9.4",
	}, Basic)
	require.NoError(t, err)
	require.Equal(t, "DEMO", lib.Dataset().Name())
	require.Equal(t, "LINUX", lib.SourceOS())
}

func TestNewLibraryDescriptionFDASubmissionRequiresASCII(t *testing.T) {
	dataset, err := NewDatasetDescription(DatasetSpec{Name: "DEMO"}, FDASubmission)
	require.NoError(t, err)

	_, err = NewLibraryDescription(LibrarySpec{
		Dataset:  dataset,
		SourceOS: "\xc3\x9f",
	}, FDASubmission)
	require.Error(t, err)
}
