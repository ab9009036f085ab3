package header

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/model"
)

func TestLibraryHeaderRoundTrip(t *testing.T) {
	want := LibraryHeader{
		SourceOS:         "LINUX",
		SourceSASVersion: "9.4",
		CreateTime:       time.Date(2024, time.March, 5, 10, 30, 0, 0, time.Local),
		ModifiedTime:     time.Date(2024, time.March, 6, 11, 45, 0, 0, time.Local),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteLibraryHeader(&buf, want))
	require.Equal(t, consts.RecordSize*3, buf.Len())

	got, err := ReadLibraryHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, want.SourceOS, got.SourceOS)
	require.Equal(t, want.SourceSASVersion, got.SourceSASVersion)
	require.True(t, want.CreateTime.Equal(got.CreateTime))
	require.True(t, want.ModifiedTime.Equal(got.ModifiedTime))
}

func TestMemberHeaderRoundTrip(t *testing.T) {
	want := MemberHeader{
		Name:              "CLINICAL",
		Label:             "Clinical observations",
		DatasetType:       "",
		SourceOS:          "LINUX",
		SourceSASVersion:  "9.4",
		CreateTime:        time.Date(2024, time.March, 5, 10, 30, 0, 0, time.Local),
		ModifiedTime:      time.Date(2024, time.March, 6, 11, 45, 0, 0, time.Local),
		NamestrRecordSize: consts.NamestrRecordSize,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMemberHeader(&buf, want))
	require.Equal(t, consts.RecordSize*4, buf.Len())

	got, err := ReadMemberHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, want.Name, got.Name)
	require.Equal(t, want.Label, got.Label)
	require.Equal(t, want.SourceOS, got.SourceOS)
	require.Equal(t, want.SourceSASVersion, got.SourceSASVersion)
	require.Equal(t, want.NamestrRecordSize, got.NamestrRecordSize)
	require.True(t, want.CreateTime.Equal(got.CreateTime))
	require.True(t, want.ModifiedTime.Equal(got.ModifiedTime))
}

// TestLibraryHeaderTolerateSingleStrayByteInReservedField exercises
// the documented %loc2xpt off-by-one tolerance: the first byte of the
// 24-byte reserved field following the OS field may be non-blank.
func TestLibraryHeaderTolerateSingleStrayByteInReservedField(t *testing.T) {
	want := LibraryHeader{SourceOS: "LINUX", SourceSASVersion: "9.4", CreateTime: time.Now(), ModifiedTime: time.Now()}
	var buf bytes.Buffer
	require.NoError(t, WriteLibraryHeader(&buf, want))
	raw := buf.Bytes()
	raw[consts.RecordSize+40] = 0x00 // first byte of the reserved field in the create-date record

	_, err := ReadLibraryHeader(bytes.NewReader(raw))
	require.NoError(t, err)
}

// TestLibraryHeaderRejectsGarbageElsewhereInReservedField confirms the
// tolerance is limited to that single byte: garbage anywhere else in
// the reserved field is a malformed stream.
func TestLibraryHeaderRejectsGarbageElsewhereInReservedField(t *testing.T) {
	want := LibraryHeader{SourceOS: "LINUX", SourceSASVersion: "9.4", CreateTime: time.Now(), ModifiedTime: time.Now()}
	var buf bytes.Buffer
	require.NoError(t, WriteLibraryHeader(&buf, want))
	raw := buf.Bytes()
	raw[consts.RecordSize+41] = 0x7A // second byte of the reserved field: not tolerated

	_, err := ReadLibraryHeader(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestMemberHeaderVMSVariant(t *testing.T) {
	want := MemberHeader{
		Name:              "OLDVAX",
		SourceOS:          "VMS",
		SourceSASVersion:  "6.06",
		CreateTime:        time.Now(),
		ModifiedTime:      time.Now(),
		NamestrRecordSize: consts.NamestrRecordSizeVMS,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMemberHeader(&buf, want))
	got, err := ReadMemberHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, consts.NamestrRecordSizeVMS, got.NamestrRecordSize)
}

func TestNamestrHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNamestrHeader(&buf, 3))
	count, err := ReadNamestrHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestNamestrRecordRoundTrip(t *testing.T) {
	outFmt, err := model.NewFormat("", 0, 0)
	require.NoError(t, err)
	v, err := model.NewVariable(model.VariableSpec{
		Name:         "AGE",
		Number:       1,
		Type:         model.Numeric,
		Length:       8,
		Label:        "Subject age",
		OutputFormat: outFmt,
		Justify:      model.JustificationLeft,
		InputFormat:  outFmt,
	}, model.FDASubmission)
	require.NoError(t, err)

	buf, err := MarshalNamestrRecord(v, 0, consts.NamestrRecordSize)
	require.NoError(t, err)
	require.Len(t, buf, consts.NamestrRecordSize)

	spec, position, err := UnmarshalNamestrRecord(buf)
	require.NoError(t, err)
	require.Equal(t, "AGE", spec.Name)
	require.Equal(t, 1, spec.Number)
	require.Equal(t, model.Numeric, spec.Type)
	require.Equal(t, 8, spec.Length)
	require.Equal(t, "Subject age", spec.Label)
	require.Equal(t, 0, position)
}

func TestObservationHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteObservationHeader(&buf))
	require.NoError(t, ReadObservationHeader(&buf))
}

func TestObservationHeaderRejectsWrongSentinel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNamestrHeader(&buf, 0))
	err := ReadObservationHeader(&buf)
	require.Error(t, err)
}
