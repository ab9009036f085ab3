package header

import (
	"fmt"
	"io"
	"time"

	"github.com/go-xport/xport-kit/pkg/bytesutil"
	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/record"
)

// MemberHeader is the per-dataset real header: the MEMBER and DSCRPTR
// sentinels, followed by two data records carrying the dataset's
// name, label, type, provenance, and timestamps. NamestrRecordSize
// reports whether this member's NAMESTR records that follow are the
// standard 140 bytes or the VAX/VMS 136-byte variant, as declared in
// the MEMBER sentinel's trailing digit field.
type MemberHeader struct {
	Name              string
	Label             string
	DatasetType       string
	SourceOS          string
	SourceSASVersion  string
	CreateTime        time.Time
	ModifiedTime      time.Time
	NamestrRecordSize int
}

// memberSentinel builds the 80-byte MEMBER HEADER sentinel for the
// given NAMESTR record size (140 or 136).
func memberSentinel(namestrSize int) (record.Record, error) {
	var rec record.Record
	switch namestrSize {
	case consts.NamestrRecordSize:
		copy(rec[:], consts.SentinelMemberHeader140)
	case consts.NamestrRecordSizeVMS:
		copy(rec[:], consts.SentinelMemberHeader136)
	default:
		return rec, fmt.Errorf("header: unsupported NAMESTR record size %d", namestrSize)
	}
	return rec, nil
}

// WriteMemberHeader writes the MEMBER and DSCRPTR sentinels and the
// two member real-header data records for mh.
func WriteMemberHeader(w io.Writer, mh MemberHeader) error {
	sentinel, err := memberSentinel(mh.NamestrRecordSize)
	if err != nil {
		return err
	}
	if err := record.WriteRecord(w, sentinel); err != nil {
		return err
	}

	var descriptor record.Record
	copy(descriptor[:], consts.SentinelDescriptorHeader)
	if err := record.WriteRecord(w, descriptor); err != nil {
		return err
	}

	createDate, err := bytesutil.EncodeDate16(mh.CreateTime)
	if err != nil {
		return fmt.Errorf("header: encoding member create date: %w", err)
	}
	rec1 := marshalRealHeaderRecord([3]string{"SAS", mh.Name, "SASDATA"}, mh.SourceSASVersion, mh.SourceOS, createDate)
	if err := record.WriteRecord(w, rec1); err != nil {
		return err
	}

	modDate, err := bytesutil.EncodeDate16(mh.ModifiedTime)
	if err != nil {
		return fmt.Errorf("header: encoding member modified date: %w", err)
	}
	var rec2 record.Record
	copy(rec2[0:16], modDate[:])
	// bytes 16-32 are reserved/blank on this second data record.
	copy(rec2[16:32], bytesutil.PadBlank("", 16))
	copy(rec2[32:72], bytesutil.PadBlank(mh.Label, consts.MaxLabelLength))
	copy(rec2[72:80], bytesutil.PadBlank(mh.DatasetType, consts.MaxDatasetTypeLength))
	return record.WriteRecord(w, rec2)
}

// ReadMemberHeader reads the MEMBER and DSCRPTR sentinels and the two
// member real-header data records that follow, using
// bytesutil.DefaultTwoDigitYear for both dates. It returns a plain
// error, not yet classified into the root package's error types, if
// the sentinels do not match; the root Reader is responsible for
// recognizing a MEMBER sentinel ahead of time (lookahead) to tell a
// second dataset apart from a malformed stream.
func ReadMemberHeader(r io.Reader) (MemberHeader, error) {
	return ReadMemberHeaderWithPivot(r, nil)
}

// ReadMemberHeaderWithPivot is ReadMemberHeader parameterized by the
// two-digit-year pivot function.
func ReadMemberHeaderWithPivot(r io.Reader, pivot bytesutil.TwoDigitYearFunc) (MemberHeader, error) {
	sentinel, err := record.ReadRecord(r)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: reading member sentinel: %w", err)
	}
	var namestrSize int
	switch {
	case sentinel.Matches(consts.SentinelMemberHeader140):
		namestrSize = consts.NamestrRecordSize
	case sentinel.Matches(consts.SentinelMemberHeader136):
		namestrSize = consts.NamestrRecordSizeVMS
	default:
		return MemberHeader{}, fmt.Errorf("header: expected member header sentinel, got %q", sentinel.String())
	}

	descriptor, err := record.ReadRecord(r)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: reading descriptor sentinel: %w", err)
	}
	if !descriptor.Matches(consts.SentinelDescriptorHeader) {
		return MemberHeader{}, fmt.Errorf("header: expected descriptor header sentinel, got %q", descriptor.String())
	}

	rec1, err := record.ReadRecord(r)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: reading member real header (create): %w", err)
	}
	labels, version, os, createField, err := unmarshalRealHeaderRecord(rec1, 3)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: member real header (create): %w", err)
	}
	name := labels[1]
	createTime, err := bytesutil.DecodeDate16(createField, pivot)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: member create date: %w", err)
	}

	rec2, err := record.ReadRecord(r)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: reading member real header (modified): %w", err)
	}
	var modField [16]byte
	copy(modField[:], rec2[0:16])
	modTime, err := bytesutil.DecodeDate16(modField, pivot)
	if err != nil {
		return MemberHeader{}, fmt.Errorf("header: member modified date: %w", err)
	}
	label := bytesutil.TrimBlank(rec2[32:72])
	datasetType := bytesutil.TrimBlank(rec2[72:80])

	return MemberHeader{
		Name:              name,
		Label:             label,
		DatasetType:       datasetType,
		SourceOS:          os,
		SourceSASVersion:  version,
		CreateTime:        createTime,
		ModifiedTime:      modTime,
		NamestrRecordSize: namestrSize,
	}, nil
}
