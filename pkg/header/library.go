// Package header implements the typed header records of an XPORT
// stream: the library-level real header, the per-member real header,
// the NAMESTR count header and fixed-layout variable records, and the
// observation section marker. Every Marshal/Unmarshal pair here
// operates on whole consts.RecordSize (or NAMESTR-sized) frames; the
// pull-reader in the root xport package owns sequencing and
// lookahead.
package header

import (
	"fmt"
	"io"
	"time"

	"github.com/go-xport/xport-kit/pkg/bytesutil"
	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/record"
)

// LibraryHeader is the library-wide real header: three 80-byte
// records (a sentinel followed by two SAS-symbol/version/OS/date
// records, one for creation, one for modification).
type LibraryHeader struct {
	SourceOS         string
	SourceSASVersion string
	CreateTime       time.Time
	ModifiedTime     time.Time
}

// marshalRealHeaderRecord builds the field layout shared by the library
// and member real-header data records: three 8-byte label fields
// identifying the section, an 8-byte version, an 8-byte OS (NUL
// padded per SAS, not blank padded), 24 blank bytes, and a 16-byte
// date.
func marshalRealHeaderRecord(labels [3]string, version, os string, date [16]byte) record.Record {
	var rec record.Record
	offset := 0
	for _, l := range labels {
		copy(rec[offset:offset+8], bytesutil.PadBlank(l, 8))
		offset += 8
	}
	copy(rec[offset:offset+8], bytesutil.PadBlank(version, 8))
	offset += 8
	// SAS writes the OS field NUL-padded rather than blank-padded.
	osField := make([]byte, 8)
	copy(osField, os)
	copy(rec[offset:offset+8], osField)
	offset += 8
	copy(rec[offset:offset+24], bytesutil.PadBlank("", 24)) // blank reserved field
	offset += 24
	copy(rec[offset:offset+16], date[:])
	return rec
}

// unmarshalRealHeaderRecord decodes the shared real-header layout and
// validates its 24-byte reserved field. The %loc2xpt writer has a
// known off-by-one bug that can leave a stray non-blank byte
// (typically the OS field's NUL bleeding over) in the very first byte
// of this region; that single byte is tolerated, but any other
// non-blank byte in the reserved field is rejected.
func unmarshalRealHeaderRecord(rec record.Record, numLabels int) (labels []string, version, os string, date [16]byte, err error) {
	offset := 0
	labels = make([]string, numLabels)
	for i := 0; i < numLabels; i++ {
		labels[i] = bytesutil.TrimBlank(rec[offset : offset+8])
		offset += 8
	}
	version = bytesutil.TrimBlank(rec[offset : offset+8])
	offset += 8
	os = bytesutil.TrimBlankAndNul(rec[offset : offset+8])
	offset += 8

	reserved := rec[offset : offset+24]
	for i, b := range reserved[1:] {
		if b != consts.Blank {
			return nil, "", "", [16]byte{}, fmt.Errorf(
				"header: reserved field byte %d is %#x, expected blank (%%loc2xpt only tolerates byte %d)",
				offset+1+i, b, offset)
		}
	}
	offset += 24

	copy(date[:], rec[offset:offset+16])
	return labels, version, os, date, nil
}

// WriteLibraryHeader writes the sentinel plus the two real-header
// data records for lh.
func WriteLibraryHeader(w io.Writer, lh LibraryHeader) error {
	var sentinel record.Record
	copy(sentinel[:], consts.SentinelLibraryHeaderV5)
	if err := record.WriteRecord(w, sentinel); err != nil {
		return err
	}

	createDate, err := bytesutil.EncodeDate16(lh.CreateTime)
	if err != nil {
		return fmt.Errorf("header: encoding library create date: %w", err)
	}
	modDate, err := bytesutil.EncodeDate16(lh.ModifiedTime)
	if err != nil {
		return fmt.Errorf("header: encoding library modified date: %w", err)
	}

	rec1 := marshalRealHeaderRecord([3]string{"SAS", "SAS", "SASLIB"}, lh.SourceSASVersion, lh.SourceOS, createDate)
	if err := record.WriteRecord(w, rec1); err != nil {
		return err
	}
	rec2 := marshalRealHeaderRecord([3]string{"SAS", "SAS", "SASLIB"}, lh.SourceSASVersion, lh.SourceOS, modDate)
	return record.WriteRecord(w, rec2)
}

// ReadLibraryHeader reads and validates the sentinel plus the two
// real-header data records that open every XPORT stream, using
// bytesutil.DefaultTwoDigitYear to interpret both dates' two-digit
// year field.
func ReadLibraryHeader(r io.Reader) (LibraryHeader, error) {
	sentinel, err := record.ReadRecord(r)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: reading library sentinel: %w", err)
	}
	if !sentinel.Matches(consts.SentinelLibraryHeaderV5) {
		return LibraryHeader{}, fmt.Errorf("header: expected library header sentinel, got %q", sentinel.String())
	}
	return ReadLibraryHeaderBody(r, nil)
}

// ReadLibraryHeaderBody reads the two real-header data records that
// follow the library sentinel. Callers that must classify the
// sentinel themselves (to distinguish an unsupported variant from a
// malformed stream) read it with record.ReadRecord and
// record.ClassifyFirstRecord, then call ReadLibraryHeaderBody for the
// rest of the section. pivot interprets each date's two-digit year;
// nil selects bytesutil.DefaultTwoDigitYear.
func ReadLibraryHeaderBody(r io.Reader, pivot bytesutil.TwoDigitYearFunc) (LibraryHeader, error) {
	rec1, err := record.ReadRecord(r)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: reading library real header (create): %w", err)
	}
	_, version, os, createField, err := unmarshalRealHeaderRecord(rec1, 3)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: library real header (create): %w", err)
	}
	createTime, err := bytesutil.DecodeDate16(createField, pivot)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: library create date: %w", err)
	}

	rec2, err := record.ReadRecord(r)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: reading library real header (modified): %w", err)
	}
	_, _, _, modField, err := unmarshalRealHeaderRecord(rec2, 3)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: library real header (modified): %w", err)
	}
	modTime, err := bytesutil.DecodeDate16(modField, pivot)
	if err != nil {
		return LibraryHeader{}, fmt.Errorf("header: library modified date: %w", err)
	}

	return LibraryHeader{
		SourceOS:         os,
		SourceSASVersion: version,
		CreateTime:       createTime,
		ModifiedTime:     modTime,
	}, nil
}
