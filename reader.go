package xport

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/header"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/model"
	"github.com/go-xport/xport-kit/pkg/numeric"
	"github.com/go-xport/xport-kit/pkg/options"
	"github.com/go-xport/xport-kit/pkg/record"
)

// Reader parses an XPORT library from a byte stream and yields its
// observations one at a time. A Reader owns source exclusively; it is
// not safe for concurrent use.
type Reader struct {
	src          *bufio.Reader
	sourceCloser io.Closer
	logger       *logging.Logger

	desc           model.LibraryDescription
	variables      []model.Variable
	offsets        []int
	dataRecordSize int

	avail    []byte
	consumed int
	sawEOF   bool
	finished bool
	closed   bool
	err      error
}

// ReadLibrary parses the headers of source eagerly (the twelve-step
// construction protocol) and returns a Reader positioned at the first
// observation. source is read through a bufio.Reader; if source also
// implements io.Closer, Reader.Close releases it.
func ReadLibrary(source io.Reader, opts ...options.ReaderOption) (*Reader, error) {
	o := options.DefaultReaderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	br := bufio.NewReader(source)

	sentinelRec, err := record.ReadRecord(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedTransportError{Reason: "empty stream, expected library header sentinel"}
		}
		return nil, &MalformedTransportError{Reason: "reading library header sentinel", Err: err}
	}
	switch record.ClassifyFirstRecord(sentinelRec) {
	case consts.FileKindXportV5:
		// continue
	case consts.FileKindXportV8:
		return nil, &UnsupportedTransportError{Reason: "SAS V8 XPORT files are not supported"}
	case consts.FileKindCPORT:
		return nil, &UnsupportedTransportError{Reason: "SAS CPORT files are not supported"}
	default:
		return nil, &MalformedTransportError{Reason: fmt.Sprintf("unrecognized first record %q", sentinelRec.String())}
	}

	libHeader, err := header.ReadLibraryHeaderBody(br, o.TwoDigitYearPivot)
	if err != nil {
		return nil, &MalformedTransportError{Reason: "reading library header", Err: err}
	}

	memberHeader, err := header.ReadMemberHeaderWithPivot(br, o.TwoDigitYearPivot)
	if err != nil {
		return nil, &MalformedTransportError{Reason: "reading member header", Err: err}
	}

	count, err := header.ReadNamestrHeader(br)
	if err != nil {
		return nil, &MalformedTransportError{Reason: "reading NAMESTR header", Err: err}
	}

	namestrSize := memberHeader.NamestrRecordSize
	variables := make([]model.Variable, 0, count)
	offsets := make([]int, 0, count)
	namestrBytesRead := 0
	for i := 0; i < count; i++ {
		buf := make([]byte, namestrSize)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, &MalformedTransportError{Reason: "reading NAMESTR record", Err: err}
		}
		namestrBytesRead += namestrSize

		spec, position, err := header.UnmarshalNamestrRecord(buf)
		if err != nil {
			return nil, &MalformedTransportError{Reason: "decoding NAMESTR record", Err: err}
		}
		v, err := model.NewVariable(spec, model.Basic)
		if err != nil {
			return nil, &MalformedTransportError{Reason: "invalid NAMESTR variable", Err: err}
		}
		variables = append(variables, v)
		offsets = append(offsets, position)
	}

	if rem := namestrBytesRead % consts.RecordSize; rem != 0 {
		pad := consts.RecordSize - rem
		if _, err := io.CopyN(io.Discard, br, int64(pad)); err != nil {
			return nil, &MalformedTransportError{Reason: "reading NAMESTR padding", Err: err}
		}
	}

	if err := header.ReadObservationHeader(br); err != nil {
		return nil, &MalformedTransportError{Reason: "reading observation header", Err: err}
	}

	dataset, err := model.NewDatasetDescription(model.DatasetSpec{
		Name:             memberHeader.Name,
		Label:            memberHeader.Label,
		DatasetType:      memberHeader.DatasetType,
		SourceOS:         memberHeader.SourceOS,
		SourceSASVersion: memberHeader.SourceSASVersion,
		Variables:        variables,
		CreateTime:       memberHeader.CreateTime,
		ModifiedTime:     memberHeader.ModifiedTime,
	}, model.Basic)
	if err != nil {
		return nil, &MalformedTransportError{Reason: "invalid dataset metadata", Err: err}
	}
	desc, err := model.NewLibraryDescription(model.LibrarySpec{
		Dataset:          dataset,
		SourceOS:         libHeader.SourceOS,
		SourceSASVersion: libHeader.SourceSASVersion,
		CreateTime:       libHeader.CreateTime,
		ModifiedTime:     libHeader.ModifiedTime,
	}, model.Basic)
	if err != nil {
		return nil, &MalformedTransportError{Reason: "invalid library metadata", Err: err}
	}

	dataRecordSize := 0
	for i, v := range variables {
		if end := offsets[i] + v.Length(); end > dataRecordSize {
			dataRecordSize = end
		}
	}

	r := &Reader{
		src:            br,
		logger:         logger,
		desc:           desc,
		variables:      variables,
		offsets:        offsets,
		dataRecordSize: dataRecordSize,
	}
	if closer, ok := source.(io.Closer); ok {
		r.sourceCloser = closer
	}

	if err := r.fill(consts.RecordSize); err != nil {
		return nil, err
	}
	if dataRecordSize == 0 {
		// A dataset with no variables has no observations to read.
		r.finished = true
	}
	logger.Debug("xport: library parsed", "dataset", desc.Dataset().Name(), "variables", len(variables))
	return r, nil
}

// Description returns the parsed library metadata.
func (r *Reader) Description() model.LibraryDescription {
	return r.desc
}

// Next returns the next observation. The second return is false once
// the stream is exhausted, at which point values is nil and err is
// nil. Once any error has been reported, every subsequent call
// re-raises it.
func (r *Reader) Next() ([]model.Value, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	if r.finished {
		return nil, false, nil
	}

	recordPos := r.consumed % consts.RecordSize

	if recordPos == 0 {
		if err := r.fill(consts.RecordSize); err != nil {
			return nil, false, r.fail(err)
		}
		if len(r.avail) == 0 {
			r.finished = true
			return nil, false, nil
		}
		if len(r.avail) < consts.RecordSize {
			err := &MalformedTransportError{Reason: "observation truncated"}
			return nil, false, r.fail(err)
		}
		var rec record.Record
		copy(rec[:], r.avail[:consts.RecordSize])
		if isMemberSentinel(rec) {
			r.finished = true
			return nil, false, r.fail(NewMultipleDatasetsError())
		}
	} else {
		remainderLen := consts.RecordSize - recordPos
		if err := r.fill(remainderLen); err != nil {
			return nil, false, r.fail(err)
		}
		if len(r.avail) < remainderLen {
			err := &MalformedTransportError{Reason: "observation truncated"}
			return nil, false, r.fail(err)
		}
		if allBlank(r.avail[:remainderLen]) {
			// The remainder alone can't disambiguate padding from a
			// genuine run of missing values: probe forward one whole
			// record at a time until EOF (padding, end of stream), a
			// MEMBER HEADER sentinel (a second dataset), or a record
			// that isn't entirely blank (the remainder was real data
			// after all). A single probed record that is itself
			// entirely blank is still ambiguous on its own — keep
			// scanning past it rather than committing to "genuine
			// data" prematurely.
			probeOffset := remainderLen
			for {
				if err := r.fill(probeOffset + consts.RecordSize); err != nil {
					return nil, false, r.fail(err)
				}
				beyond := len(r.avail) - probeOffset
				if beyond == 0 {
					r.finished = true
					r.avail = nil
					return nil, false, nil
				}
				if beyond < consts.RecordSize {
					err := &MalformedTransportError{Reason: "observation truncated"}
					return nil, false, r.fail(err)
				}
				var probe record.Record
				copy(probe[:], r.avail[probeOffset:probeOffset+consts.RecordSize])
				if isMemberSentinel(probe) {
					r.finished = true
					return nil, false, r.fail(NewMultipleDatasetsError())
				}
				if !allBlank(probe[:]) {
					// Genuine data: fall through and consume the
					// remainder (and whatever follows) as a run of
					// missing values.
					break
				}
				probeOffset += consts.RecordSize
			}
		}
	}

	if err := r.fill(r.dataRecordSize); err != nil {
		return nil, false, r.fail(err)
	}
	if len(r.avail) < r.dataRecordSize {
		err := &MalformedTransportError{Reason: "observation truncated"}
		return nil, false, r.fail(err)
	}
	row := r.avail[:r.dataRecordSize]
	values, err := r.extractValues(row)
	if err != nil {
		return nil, false, r.fail(err)
	}
	r.avail = r.avail[r.dataRecordSize:]
	r.consumed += r.dataRecordSize
	r.logger.Trace("xport: observation decoded", "offset", r.consumed-r.dataRecordSize)
	return values, true, nil
}

// fail latches err as the reader's permanent fault, logs it, and
// returns it for the caller to propagate.
func (r *Reader) fail(err error) error {
	r.err = err
	r.logger.Error(err, "xport: reader fault")
	return err
}

// Close releases the underlying source, if it implements io.Closer.
// Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.sourceCloser != nil {
		if err := r.sourceCloser.Close(); err != nil {
			return &IOError{Op: "close reader source", Err: err}
		}
	}
	return nil
}

// fill grows r.avail to at least n bytes by pulling further 80-byte
// records from the source, stopping at a clean EOF.
func (r *Reader) fill(n int) error {
	for len(r.avail) < n && !r.sawEOF {
		rec, err := record.ReadRecord(r.src)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.sawEOF = true
				break
			}
			if errors.Is(err, record.ErrShortRecord) {
				return &MalformedTransportError{Reason: "observation truncated", Err: err}
			}
			return &IOError{Op: "read observation record", Err: err}
		}
		r.avail = append(r.avail, rec[:]...)
	}
	return nil
}

func (r *Reader) extractValues(row []byte) ([]model.Value, error) {
	values := make([]model.Value, len(r.variables))
	for i, v := range r.variables {
		start := r.offsets[i]
		end := start + v.Length()
		if end > len(row) {
			return nil, &MalformedTransportError{Reason: "observation truncated"}
		}
		slot := row[start:end]
		switch v.Type() {
		case model.Character:
			if allBlank(slot) {
				values[i] = model.Missing(model.MissingStandard)
			} else {
				values[i] = model.Text(string(slot))
			}
		case model.Numeric:
			var b8 [8]byte
			copy(b8[:], slot)
			val, m, isMissing, err := numeric.DecodeDouble(b8)
			if err != nil {
				return nil, &MalformedTransportError{Reason: fmt.Sprintf("malformed numeric value: %v", err)}
			}
			if isMissing {
				values[i] = model.Missing(m)
			} else {
				values[i] = model.Numeric(val)
			}
		}
	}
	return values, nil
}

func isMemberSentinel(rec record.Record) bool {
	return rec.Matches(consts.SentinelMemberHeader140) || rec.Matches(consts.SentinelMemberHeader136)
}

func allBlank(b []byte) bool {
	for _, x := range b {
		if x != consts.Blank {
			return false
		}
	}
	return true
}
