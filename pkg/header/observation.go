package header

import (
	"fmt"
	"io"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/record"
)

// WriteObservationHeader writes the OBS sentinel that marks the start
// of the data section.
func WriteObservationHeader(w io.Writer) error {
	var rec record.Record
	copy(rec[:], consts.SentinelObservationHeader)
	return record.WriteRecord(w, rec)
}

// ReadObservationHeader reads and validates the OBS sentinel.
func ReadObservationHeader(r io.Reader) error {
	rec, err := record.ReadRecord(r)
	if err != nil {
		return fmt.Errorf("header: reading observation sentinel: %w", err)
	}
	if !rec.Matches(consts.SentinelObservationHeader) {
		return fmt.Errorf("header: expected observation header sentinel, got %q", rec.String())
	}
	return nil
}
