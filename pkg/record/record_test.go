package record

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-xport/xport-kit/pkg/consts"
)

func TestReadRecordRoundTrip(t *testing.T) {
	var want Record
	copy(want[:], "hello world")
	var buf bytes.Buffer
	require.NoError(t, WriteRecord(&buf, want))
	require.Equal(t, consts.RecordSize, buf.Len())

	got, err := ReadRecord(&buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadRecordCleanEOF(t *testing.T) {
	_, err := ReadRecord(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadRecordShort(t *testing.T) {
	_, err := ReadRecord(bytes.NewReader(make([]byte, 10)))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrShortRecord)
}

func TestClassifyFirstRecord(t *testing.T) {
	var v5 Record
	copy(v5[:], consts.SentinelLibraryHeaderV5)
	require.Equal(t, consts.FileKindXportV5, ClassifyFirstRecord(v5))

	var v8 Record
	copy(v8[:], consts.SentinelLibraryHeaderV8)
	require.Equal(t, consts.FileKindXportV8, ClassifyFirstRecord(v8))

	var cport Record
	copy(cport[:], consts.SentinelCPORTHeader)
	require.Equal(t, consts.FileKindCPORT, ClassifyFirstRecord(cport))

	var garbage Record
	copy(garbage[:], "not a real sentinel at all")
	require.Equal(t, consts.FileKindUnknown, ClassifyFirstRecord(garbage))
}

func TestHasPrefix(t *testing.T) {
	var rec Record
	copy(rec[:], consts.SentinelNamestrHeaderPrefix+"00000000001400000000000000000000")
	require.True(t, rec.HasPrefix(consts.SentinelNamestrHeaderPrefix))
	require.False(t, rec.HasPrefix("garbage"))
}
