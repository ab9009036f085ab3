package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-xport/xport-kit/pkg/model"
)

func TestDecodeAllZeroIsZero(t *testing.T) {
	v, _, isMissing, err := DecodeDouble([8]byte{})
	require.NoError(t, err)
	require.False(t, isMissing)
	require.Equal(t, 0.0, v)
}

func TestDecodeStandardMissing(t *testing.T) {
	b := [8]byte{0x2E, 0, 0, 0, 0, 0, 0, 0}
	v, m, isMissing, err := DecodeDouble(b)
	require.NoError(t, err)
	require.True(t, isMissing)
	require.Equal(t, model.MissingStandard, m)
	require.Equal(t, 0.0, v)
}

func TestDecodeAllLetterMissingValues(t *testing.T) {
	for c := byte('A'); c <= 'Z'; c++ {
		b := [8]byte{c, 0, 0, 0, 0, 0, 0, 0}
		_, m, isMissing, err := DecodeDouble(b)
		require.NoError(t, err)
		require.True(t, isMissing)
		require.Equal(t, model.MissingValue(c), m)
	}
	b := [8]byte{'_', 0, 0, 0, 0, 0, 0, 0}
	_, m, isMissing, err := DecodeDouble(b)
	require.NoError(t, err)
	require.True(t, isMissing)
	require.Equal(t, model.MissingUnderscore, m)
}

func TestDecodeMissingRejectsNonzeroTrailer(t *testing.T) {
	b := [8]byte{'.', 0, 0, 0, 0, 0, 0, 1}
	_, _, _, err := DecodeDouble(b)
	require.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []float64{
		1, -1, 0.5, 100, -100, 3.14159, 1e10, -1e10,
		1.0 / 3.0, 123456789.123456, -0.00001, 2,
	}
	for _, v := range cases {
		enc, err := EncodeDouble(v)
		require.NoError(t, err, "encoding %v", v)
		dec, _, isMissing, err := DecodeDouble(enc)
		require.NoError(t, err, "decoding %v", v)
		require.False(t, isMissing)
		require.InEpsilon(t, v, dec, 1e-12, "round trip of %v", v)
	}
}

func TestEncodeZeroDropsSign(t *testing.T) {
	enc, err := EncodeDouble(math.Copysign(0, -1))
	require.NoError(t, err)
	require.Equal(t, byte(0x00), enc[0])

	enc, err = EncodeDouble(0)
	require.NoError(t, err)
	require.Equal(t, [8]byte{}, enc)
}

func TestEncodeRejectsNaN(t *testing.T) {
	_, err := EncodeDouble(math.NaN())
	require.Error(t, err)
}

func TestEncodeRejectsInf(t *testing.T) {
	_, err := EncodeDouble(math.Inf(1))
	require.Error(t, err)
}

func TestEncodeOverflow(t *testing.T) {
	_, err := EncodeDouble(math.Pow(2, 260))
	require.Error(t, err)
	require.Equal(t, "XPORT format cannot store numbers larger than pow(2, 248)", err.Error())
}

func TestEncodeUnderflow(t *testing.T) {
	_, err := EncodeDouble(math.Pow(2, -300))
	require.Error(t, err)
}

func TestEncodeMissing(t *testing.T) {
	b := EncodeMissing(model.MissingStandard)
	require.Equal(t, [8]byte{'.', 0, 0, 0, 0, 0, 0, 0}, b)

	b = EncodeMissing(model.MissingValue('F'))
	require.Equal(t, byte('F'), b[0])
	for _, x := range b[1:] {
		require.Zero(t, x)
	}
}
