package bytesutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPadBlankAndTrim(t *testing.T) {
	b := PadBlank("CITY", 8)
	require.Equal(t, []byte("CITY    "), b)
	require.Equal(t, "CITY", TrimBlank(b))
}

func TestTrimBlankAndNul(t *testing.T) {
	b := []byte("UNIX\x00\x00\x00\x00")
	require.Equal(t, "UNIX", TrimBlankAndNul(b))

	b2 := []byte("UNIX    ")
	require.Equal(t, "UNIX", TrimBlankAndNul(b2))
}

func TestUint16BERoundTrip(t *testing.T) {
	b := make([]byte, 2)
	PutUint16BE(b, 4660)
	require.Equal(t, uint16(4660), Uint16BE(b))
	require.Equal(t, []byte{0x12, 0x34}, b)
}

func TestUint32BERoundTrip(t *testing.T) {
	b := make([]byte, 4)
	PutUint32BE(b, 0x01020304)
	require.Equal(t, uint32(0x01020304), Uint32BE(b))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b)
}

func TestDate16RoundTrip(t *testing.T) {
	want := time.Date(2023, time.June, 7, 14, 5, 9, 0, time.Local)
	enc, err := EncodeDate16(want)
	require.NoError(t, err)
	require.Equal(t, "07JUN23:14:05:09", string(enc[:]))

	got, err := DecodeDate16(enc, nil)
	require.NoError(t, err)
	require.True(t, want.Equal(got))
}

func TestDate16PivotYear(t *testing.T) {
	var b [16]byte
	copy(b[:], "01JAN85:00:00:00")
	got, err := DecodeDate16(b, nil)
	require.NoError(t, err)
	require.Equal(t, 1985, got.Year())

	copy(b[:], "01JAN05:00:00:00")
	got, err = DecodeDate16(b, nil)
	require.NoError(t, err)
	require.Equal(t, 2005, got.Year())
}

func TestDate16RejectsDeviation(t *testing.T) {
	var b [16]byte
	copy(b[:], "2023-06-07T14:05")
	_, err := DecodeDate16(b, nil)
	require.Error(t, err)

	copy(b[:], "07xxx23:14:05:09")
	_, err = DecodeDate16(b, nil)
	require.Error(t, err)
}

func TestDefaultTwoDigitYear(t *testing.T) {
	require.Equal(t, 2000, DefaultTwoDigitYear(0))
	require.Equal(t, 2059, DefaultTwoDigitYear(59))
	require.Equal(t, 1960, DefaultTwoDigitYear(60))
	require.Equal(t, 1999, DefaultTwoDigitYear(99))
}
