package xport

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-xport/xport-kit/pkg/bytesutil"
	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/header"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/model"
	"github.com/go-xport/xport-kit/pkg/numeric"
	"github.com/go-xport/xport-kit/pkg/options"
	"github.com/go-xport/xport-kit/pkg/validate"
)

// Writer serializes a single dataset's observations to an XPORT byte
// stream. A Writer owns sink exclusively; it is not safe for
// concurrent use.
type Writer struct {
	sink       io.Writer
	sinkCloser io.Closer
	logger     *logging.Logger
	strictness model.Strictness

	variables      []model.Variable
	offsets        []int
	dataRecordSize int

	buf        []byte
	totalBytes int64
	closed     bool
	err        error
}

// WriteLibrary re-validates desc under the Writer's strictness (fail
// fast on the write side, per this package's validation policy) and
// writes every header section up through the observation sentinel. It
// returns a Writer ready for Append.
func WriteLibrary(sink io.Writer, desc model.LibraryDescription, opts ...options.WriterOption) (*Writer, error) {
	o := options.DefaultWriterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	dataset, err := revalidateDataset(desc.Dataset(), o.Strictness)
	if err != nil {
		return nil, err
	}
	library, err := model.NewLibraryDescription(model.LibrarySpec{
		Dataset:          dataset,
		SourceOS:         desc.SourceOS(),
		SourceSASVersion: desc.SourceSASVersion(),
		CreateTime:       desc.CreateTime(),
		ModifiedTime:     desc.ModifiedTime(),
	}, o.Strictness)
	if err != nil {
		return nil, &InvalidArgumentError{Reason: err.Error()}
	}

	if err := header.WriteLibraryHeader(sink, header.LibraryHeader{
		SourceOS:         library.SourceOS(),
		SourceSASVersion: library.SourceSASVersion(),
		CreateTime:       library.CreateTime(),
		ModifiedTime:     library.ModifiedTime(),
	}); err != nil {
		return nil, &IOError{Op: "write library header", Err: err}
	}

	if err := header.WriteMemberHeader(sink, header.MemberHeader{
		Name:              dataset.Name(),
		Label:             dataset.Label(),
		DatasetType:       dataset.DatasetType(),
		SourceOS:          dataset.SourceOS(),
		SourceSASVersion:  dataset.SourceSASVersion(),
		CreateTime:        dataset.CreateTime(),
		ModifiedTime:      dataset.ModifiedTime(),
		NamestrRecordSize: consts.NamestrRecordSize,
	}); err != nil {
		return nil, &IOError{Op: "write member header", Err: err}
	}

	variables := dataset.Variables()
	if err := header.WriteNamestrHeader(sink, len(variables)); err != nil {
		return nil, &IOError{Op: "write NAMESTR header", Err: err}
	}

	offsets := make([]int, len(variables))
	pos := 0
	namestrBytes := 0
	for i, v := range variables {
		offsets[i] = pos
		buf, err := header.MarshalNamestrRecord(v, pos, consts.NamestrRecordSize)
		if err != nil {
			return nil, &InvalidArgumentError{Reason: err.Error()}
		}
		if _, err := sink.Write(buf); err != nil {
			return nil, &IOError{Op: "write NAMESTR record", Err: err}
		}
		namestrBytes += len(buf)
		pos += v.Length()
	}
	if rem := namestrBytes % consts.RecordSize; rem != 0 {
		if _, err := sink.Write(make([]byte, consts.RecordSize-rem)); err != nil {
			return nil, &IOError{Op: "write NAMESTR padding", Err: err}
		}
	}

	if err := header.WriteObservationHeader(sink); err != nil {
		return nil, &IOError{Op: "write observation header", Err: err}
	}

	w := &Writer{
		sink:           sink,
		logger:         logger,
		strictness:     o.Strictness,
		variables:      variables,
		offsets:        offsets,
		dataRecordSize: pos,
	}
	if closer, ok := sink.(io.Closer); ok {
		w.sinkCloser = closer
	}
	logger.Debug("xport: library header written", "dataset", dataset.Name(), "variables", len(variables))
	return w, nil
}

// revalidateDataset reconstructs each variable and the dataset itself
// under strictness, so a description assembled under Basic strictness
// (as a Reader always produces) still fails fast here if it would
// violate the Writer's stricter defaults.
func revalidateDataset(d model.DatasetDescription, strictness model.Strictness) (model.DatasetDescription, error) {
	vars := d.Variables()
	revalidated := make([]model.Variable, len(vars))
	for i, v := range vars {
		nv, err := model.NewVariable(model.VariableSpec{
			Name:         v.Name(),
			Number:       v.Number(),
			Type:         v.Type(),
			Length:       v.Length(),
			Label:        v.Label(),
			OutputFormat: v.OutputFormat(),
			Justify:      v.Justify(),
			InputFormat:  v.InputFormat(),
		}, strictness)
		if err != nil {
			return model.DatasetDescription{}, &InvalidArgumentError{Reason: err.Error()}
		}
		revalidated[i] = nv
	}
	dataset, err := model.NewDatasetDescription(model.DatasetSpec{
		Name:             d.Name(),
		Label:            d.Label(),
		DatasetType:      d.DatasetType(),
		SourceOS:         d.SourceOS(),
		SourceSASVersion: d.SourceSASVersion(),
		Variables:        revalidated,
		CreateTime:       d.CreateTime(),
		ModifiedTime:     d.ModifiedTime(),
	}, strictness)
	if err != nil {
		return model.DatasetDescription{}, &InvalidArgumentError{Reason: err.Error()}
	}
	return dataset, nil
}

// Append encodes one observation and writes every full 80-byte record
// it completes. The row is encoded into a local buffer first: if any
// value fails to encode, nothing beyond previously flushed records is
// written.
func (w *Writer) Append(values []model.Value) error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		err := &InvalidStateError{Reason: "Append called after Close"}
		return w.fail(err)
	}
	if len(values) != len(w.variables) {
		var err error
		if len(values) > len(w.variables) {
			err = &InvalidArgumentError{Reason: fmt.Sprintf(
				"too many values: got %d, dataset has %d variables", len(values), len(w.variables))}
		} else {
			err = &InvalidArgumentError{Reason: fmt.Sprintf(
				"too few values: got %d, dataset has %d variables", len(values), len(w.variables))}
		}
		return w.fail(err)
	}

	row := make([]byte, w.dataRecordSize)
	for i, v := range w.variables {
		start := w.offsets[i]
		slot := row[start : start+v.Length()]
		val := values[i]

		switch v.Type() {
		case model.Character:
			if val.IsNumeric() {
				err := &InvalidArgumentError{Reason: "CHARACTER variables use the empty string for missing values"}
				return w.fail(err)
			}
			text, _ := val.Text()
			if w.strictness == model.FDASubmission {
				if err := validate.RequireASCII("value", text); err != nil {
					werr := &InvalidArgumentError{Reason: err.Error()}
					return w.fail(werr)
				}
			}
			if len(text) > v.Length() {
				err := &InvalidArgumentError{Reason: fmt.Sprintf(
					"value for %q is %d bytes, exceeding its declared length %d", v.Name(), len(text), v.Length())}
				return w.fail(err)
			}
			copy(slot, bytesutil.PadBlank(text, v.Length()))

		case model.Numeric:
			if !val.IsNumeric() {
				err := &InvalidArgumentError{Reason: fmt.Sprintf(
					"value for NUMERIC variable %q must be numeric or missing, not a string", v.Name())}
				return w.fail(err)
			}
			if val.IsMissing() {
				m, _ := val.MissingValue()
				b8 := numeric.EncodeMissing(m)
				copy(slot, b8[:v.Length()])
			} else {
				num, err := w.numericSlotValue(v.Name(), val)
				if err != nil {
					return w.fail(err)
				}
				b8, err := numeric.EncodeDouble(num)
				if err != nil {
					werr := &InvalidArgumentError{Reason: err.Error()}
					return w.fail(werr)
				}
				copy(slot, b8[:v.Length()])
			}
		}
	}

	w.buf = append(w.buf, row...)
	if err := w.flushFullRecords(); err != nil {
		return w.fail(err)
	}
	w.logger.Trace("xport: observation appended", "offset", w.totalBytes)
	w.totalBytes += int64(len(row))
	return nil
}

// fail latches err as the writer's permanent fault, logs it, and
// returns it for the caller to propagate.
func (w *Writer) fail(err error) error {
	w.err = err
	w.logger.Error(err, "xport: writer fault")
	return err
}

// numericSlotValue reduces a non-missing NUMERIC Value to the float64
// numeric.EncodeDouble understands: a plain number as-is, or a local
// date/time/date-time converted to its Epoch-relative day or second
// offset per spec.md's writer contract. val.IsNumeric() must already
// be true and val.IsMissing() false.
func (w *Writer) numericSlotValue(name string, val model.Value) (float64, error) {
	if num, ok := val.Number(); ok {
		return num, nil
	}
	if d, ok := val.Date(); ok {
		if d.Location() != time.UTC {
			return 0, &InvalidArgumentError{Reason: fmt.Sprintf(
				"date value for %q carries an implicit time zone; construct it in time.UTC", name)}
		}
		midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		days := midnight.Sub(model.Epoch).Hours() / 24
		return days, nil
	}
	if t, ok := val.LocalTime(); ok {
		if t.Location() != time.UTC {
			return 0, &InvalidArgumentError{Reason: fmt.Sprintf(
				"time value for %q carries an implicit time zone; construct it in time.UTC", name)}
		}
		secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
		return float64(secs), nil
	}
	if dt, ok := val.DateTime(); ok {
		if dt.Location() != time.UTC {
			return 0, &InvalidArgumentError{Reason: fmt.Sprintf(
				"date-time value for %q carries an implicit time zone; construct it in time.UTC", name)}
		}
		return dt.Sub(model.Epoch).Seconds(), nil
	}
	return 0, &InvalidArgumentError{Reason: fmt.Sprintf("value for NUMERIC variable %q has no recognized payload", name)}
}

func (w *Writer) flushFullRecords() error {
	for len(w.buf) >= consts.RecordSize {
		if _, err := w.sink.Write(w.buf[:consts.RecordSize]); err != nil {
			return &IOError{Op: "write observation record", Err: err}
		}
		w.buf = w.buf[consts.RecordSize:]
	}
	return nil
}

// Close pads any partially filled final record with blanks, flushes
// it, and releases sink if it implements io.Closer. Close is
// idempotent; Append after Close fails with InvalidStateError.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.err != nil {
		if w.sinkCloser != nil {
			w.sinkCloser.Close()
		}
		return w.err
	}
	if len(w.buf) > 0 {
		pad := consts.RecordSize - len(w.buf)
		padded := append(w.buf, bytes.Repeat([]byte{consts.Blank}, pad)...)
		if _, err := w.sink.Write(padded); err != nil {
			err2 := &IOError{Op: "write final padded record", Err: err}
			w.err = err2
			return err2
		}
		w.buf = nil
	}
	if w.sinkCloser != nil {
		if err := w.sinkCloser.Close(); err != nil {
			return &IOError{Op: "close writer sink", Err: err}
		}
	}
	return nil
}
