// Package consts holds the fixed sizes and sentinel strings defined by
// TS-140 for the SAS V5 Transport (XPORT) format.
package consts

const (
	// RecordSize is the length in bytes of every fixed framing record in
	// an XPORT stream except the NAMESTR record.
	RecordSize = 80

	// NamestrRecordSize is the length in bytes of a NAMESTR record on
	// most platforms.
	NamestrRecordSize = 140

	// NamestrRecordSizeVMS is the length in bytes of a NAMESTR record
	// produced by VAX/VMS systems. Recognized on read only.
	NamestrRecordSizeVMS = 136

	// MaxVariables is the largest number of variables a dataset may
	// declare; the NAMESTR header's count field is four ASCII digits.
	MaxVariables = 9999

	// MaxCharacterLengthBasic is the largest CHARACTER variable length
	// under Basic strictness.
	MaxCharacterLengthBasic = 32767

	// MaxCharacterLengthFDA is the largest CHARACTER variable length
	// under FDA submission strictness.
	MaxCharacterLengthFDA = 200

	// MinNumericLength and MaxNumericLength bound a NUMERIC variable's
	// on-disk length in bytes.
	MinNumericLength = 2
	MaxNumericLength = 8

	// MaxNameLength bounds dataset and variable names.
	MaxNameLength = 8

	// MaxLabelLength bounds dataset and variable labels.
	MaxLabelLength = 40

	// MaxDatasetTypeLength bounds the dataset "type" field.
	MaxDatasetTypeLength = 8

	// MaxSourceLength bounds the source_os and source_sas_version fields.
	MaxSourceLength = 8

	// MaxFormatNameLength bounds a Format's name field.
	MaxFormatNameLength = 8

	// DateFieldSize is the width in bytes of the fixed "ddMMMyy:hh:mm:ss"
	// date field used throughout the header records.
	DateFieldSize = 16

	// Blank is the ASCII space byte used to pad fixed-width string
	// fields.
	Blank = 0x20
)

// Sentinel header strings. Each occupies the first bytes of an 80-byte
// record; the remainder of the record is padded with ASCII '0' unless
// noted otherwise.
const (
	SentinelLibraryHeaderV5 = "HEADER RECORD*******LIBRARY HEADER RECORD!!!!!!!00000000000000000000000000000000"
	SentinelLibraryHeaderV8 = "HEADER RECORD*******LIBV8   HEADER RECORD!!!!!!!00000000000000000000000000000000"
	SentinelCPORTHeader     = "**COMPRESSED** **COMPRESSED** **COMPRESSED** **COMPRESSED** **COMPRESSED********"

	SentinelMemberHeader140     = "HEADER RECORD*******MEMBER  HEADER RECORD!!!!!!!00000000000000000000000000014000"
	SentinelMemberHeader136     = "HEADER RECORD*******MEMBER  HEADER RECORD!!!!!!!00000000000000000000000000013600"
	SentinelDescriptorHeader    = "HEADER RECORD*******DSCRPTR HEADER RECORD!!!!!!!00000000000000000000000000000000"
	SentinelNamestrHeaderPrefix = "HEADER RECORD*******NAMESTR HEADER RECORD!!!!!!!"
	SentinelObservationHeader   = "HEADER RECORD*******OBS     HEADER RECORD!!!!!!!00000000000000000000000000000000"
)

// FileKind identifies the variant recognized by inspecting record 1 of
// a stream.
type FileKind int

const (
	// FileKindUnknown means record 1 matched none of the recognized
	// sentinels; the stream is malformed.
	FileKindUnknown FileKind = iota
	// FileKindXportV5 is the supported SAS V5 XPORT variant.
	FileKindXportV5
	// FileKindXportV8 is the SAS V8 extension; recognized only to be
	// rejected.
	FileKindXportV8
	// FileKindCPORT is the compressed CPORT variant; recognized only
	// to be rejected.
	FileKindCPORT
)

func (k FileKind) String() string {
	switch k {
	case FileKindXportV5:
		return "SAS V5 XPORT"
	case FileKindXportV8:
		return "SAS V8 XPORT"
	case FileKindCPORT:
		return "SAS CPORT"
	default:
		return "unknown"
	}
}
