package header

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-xport/xport-kit/pkg/bytesutil"
	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/model"
	"github.com/go-xport/xport-kit/pkg/record"
)

// namestrCountWidth is the width of the ASCII variable-count field
// embedded in the NAMESTR sentinel record, at bytes [54:58).
const namestrCountWidth = 4
const namestrCountOffset = 54

// WriteNamestrHeader writes the NAMESTR sentinel with count encoded
// in its trailing digit field.
func WriteNamestrHeader(w io.Writer, count int) error {
	if count < 0 || count > consts.MaxVariables {
		return fmt.Errorf("header: variable count %d out of range 0..%d", count, consts.MaxVariables)
	}
	var rec record.Record
	copy(rec[:], consts.SentinelNamestrHeaderPrefix)
	for i := len(consts.SentinelNamestrHeaderPrefix); i < consts.RecordSize; i++ {
		rec[i] = '0'
	}
	digits := fmt.Sprintf("%0*d", namestrCountWidth, count)
	copy(rec[namestrCountOffset:namestrCountOffset+namestrCountWidth], digits)
	return record.WriteRecord(w, rec)
}

// ReadNamestrHeader reads the NAMESTR sentinel and returns the
// declared variable count.
func ReadNamestrHeader(r io.Reader) (int, error) {
	rec, err := record.ReadRecord(r)
	if err != nil {
		return 0, fmt.Errorf("header: reading NAMESTR sentinel: %w", err)
	}
	if !rec.HasPrefix(consts.SentinelNamestrHeaderPrefix) {
		return 0, fmt.Errorf("header: expected NAMESTR header sentinel, got %q", rec.String())
	}
	digits := string(rec[namestrCountOffset : namestrCountOffset+namestrCountWidth])
	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("header: malformed NAMESTR variable count %q: %w", digits, err)
	}
	return count, nil
}

// Namestr field byte offsets within a 140-byte record. The 136-byte
// VMS variant shares this layout but trims 4 bytes off the trailing
// reserved field.
const (
	offNtype  = 0
	offNhfun  = 2
	offNlng   = 4
	offNvar0  = 6
	offNname  = 8
	offNlabel = 16
	offNform  = 56
	offNfl    = 64
	offNfd    = 66
	offNfj    = 68
	offNfill  = 70
	offNiform = 72
	offNifl   = 80
	offNifd   = 82
	offNpos   = 84
	namestrFixedSize = 88
)

// MarshalNamestrRecord encodes v as a NAMESTR record of size
// recordSize (consts.NamestrRecordSize or consts.NamestrRecordSizeVMS).
func MarshalNamestrRecord(v model.Variable, position int, recordSize int) ([]byte, error) {
	if recordSize != consts.NamestrRecordSize && recordSize != consts.NamestrRecordSizeVMS {
		return nil, fmt.Errorf("header: unsupported NAMESTR record size %d", recordSize)
	}
	buf := make([]byte, recordSize)

	bytesutil.PutUint16BE(buf[offNtype:], uint16(v.Type()))
	bytesutil.PutUint16BE(buf[offNhfun:], 0)
	bytesutil.PutUint16BE(buf[offNlng:], uint16(v.Length()))
	bytesutil.PutUint16BE(buf[offNvar0:], uint16(v.Number()))
	copy(buf[offNname:offNname+8], bytesutil.PadBlank(v.Name(), 8))
	copy(buf[offNlabel:offNlabel+40], bytesutil.PadBlank(v.Label(), 40))
	copy(buf[offNform:offNform+8], bytesutil.PadBlank(v.OutputFormat().Name(), 8))
	bytesutil.PutUint16BE(buf[offNfl:], uint16(v.OutputFormat().Width()))
	bytesutil.PutUint16BE(buf[offNfd:], uint16(v.OutputFormat().Digits()))
	bytesutil.PutUint16BE(buf[offNfj:], uint16(justificationCode(v.Justify())))
	bytesutil.PutUint16BE(buf[offNfill:], 0)
	copy(buf[offNiform:offNiform+8], bytesutil.PadBlank(v.InputFormat().Name(), 8))
	bytesutil.PutUint16BE(buf[offNifl:], uint16(v.InputFormat().Width()))
	bytesutil.PutUint16BE(buf[offNifd:], uint16(v.InputFormat().Digits()))
	bytesutil.PutUint32BE(buf[offNpos:], uint32(position))
	// Remaining bytes (reserved) stay zero.
	return buf, nil
}

// UnmarshalNamestrRecord decodes buf, which must be exactly
// consts.NamestrRecordSize or consts.NamestrRecordSizeVMS bytes, into
// a VariableSpec and its byte offset within an observation, ready for
// model.NewVariable.
func UnmarshalNamestrRecord(buf []byte) (spec model.VariableSpec, position int, err error) {
	if len(buf) != consts.NamestrRecordSize && len(buf) != consts.NamestrRecordSizeVMS {
		return spec, 0, fmt.Errorf("header: NAMESTR record has unexpected length %d", len(buf))
	}
	ntype := bytesutil.Uint16BE(buf[offNtype:])
	var typ model.VariableType
	switch ntype {
	case uint16(model.Numeric):
		typ = model.Numeric
	case uint16(model.Character):
		typ = model.Character
	default:
		return spec, 0, fmt.Errorf("header: NAMESTR ntype %d is neither 1 (NUMERIC) nor 2 (CHARACTER)", ntype)
	}

	outFormat, err := model.NewFormat(
		bytesutil.TrimBlank(buf[offNform:offNform+8]),
		int(bytesutil.Uint16BE(buf[offNfl:])),
		int(bytesutil.Uint16BE(buf[offNfd:])),
	)
	if err != nil {
		return spec, 0, fmt.Errorf("header: NAMESTR output format: %w", err)
	}
	inFormat, err := model.NewFormat(
		bytesutil.TrimBlank(buf[offNiform:offNiform+8]),
		int(bytesutil.Uint16BE(buf[offNifl:])),
		int(bytesutil.Uint16BE(buf[offNifd:])),
	)
	if err != nil {
		return spec, 0, fmt.Errorf("header: NAMESTR input format: %w", err)
	}

	spec = model.VariableSpec{
		Name:         bytesutil.TrimBlank(buf[offNname : offNname+8]),
		Number:       int(bytesutil.Uint16BE(buf[offNvar0:])),
		Type:         typ,
		Length:       int(bytesutil.Uint16BE(buf[offNlng:])),
		Label:        bytesutil.TrimBlank(buf[offNlabel : offNlabel+40]),
		OutputFormat: outFormat,
		Justify:      justificationFromCode(bytesutil.Uint16BE(buf[offNfj:])),
		InputFormat:  inFormat,
	}
	position = int(bytesutil.Uint32BE(buf[offNpos:]))
	return spec, position, nil
}

func justificationCode(j model.Justification) int {
	switch j {
	case model.JustificationRight:
		return 1
	default:
		return 0
	}
}

func justificationFromCode(code uint16) model.Justification {
	switch code {
	case 0:
		return model.JustificationLeft
	case 1:
		return model.JustificationRight
	default:
		return model.JustificationUnknown
	}
}
