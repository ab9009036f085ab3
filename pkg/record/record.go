// Package record implements the fixed 80-byte record framing that
// underlies every section of an XPORT stream except the variable-
// length NAMESTR body (see pkg/header), which is counted in whole
// 80-byte records but packs fixed-size C structs rather than text.
package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-xport/xport-kit/pkg/consts"
)

// Record is one 80-byte frame of an XPORT stream.
type Record [consts.RecordSize]byte

// ErrShortRecord is wrapped into the error returned by ReadRecord
// when the underlying reader ends mid-record.
var ErrShortRecord = errors.New("record: stream ended mid-record")

// ReadRecord reads exactly one 80-byte record from r. It returns
// io.EOF, unmodified, only when the stream ends exactly on a record
// boundary with nothing left to read; any partial record is reported
// via ErrShortRecord.
func ReadRecord(r io.Reader) (Record, error) {
	var rec Record
	n, err := io.ReadFull(r, rec[:])
	switch {
	case err == io.EOF && n == 0:
		return Record{}, io.EOF
	case err == io.ErrUnexpectedEOF || (err == io.EOF && n > 0):
		return Record{}, fmt.Errorf("%w: read %d of %d bytes", ErrShortRecord, n, consts.RecordSize)
	case err != nil:
		return Record{}, fmt.Errorf("record: read failed: %w", err)
	}
	return rec, nil
}

// WriteRecord writes rec to w in full.
func WriteRecord(w io.Writer, rec Record) error {
	_, err := w.Write(rec[:])
	if err != nil {
		return fmt.Errorf("record: write failed: %w", err)
	}
	return nil
}

// ClassifyFirstRecord inspects rec, expected to be the first record
// of a stream, and reports which file kind's sentinel it matches.
func ClassifyFirstRecord(rec Record) consts.FileKind {
	switch string(rec[:]) {
	case consts.SentinelLibraryHeaderV5:
		return consts.FileKindXportV5
	case consts.SentinelLibraryHeaderV8:
		return consts.FileKindXportV8
	case consts.SentinelCPORTHeader:
		return consts.FileKindCPORT
	default:
		return consts.FileKindUnknown
	}
}

// Matches reports whether rec's bytes equal sentinel exactly.
func (rec Record) Matches(sentinel string) bool {
	return string(rec[:]) == sentinel
}

// HasPrefix reports whether rec begins with prefix.
func (rec Record) HasPrefix(prefix string) bool {
	return len(prefix) <= len(rec) && string(rec[:len(prefix)]) == prefix
}

// String renders rec as a string, for use in error messages and
// prefix/sentinel comparisons.
func (rec Record) String() string {
	return string(rec[:])
}
