// Package bytesutil holds the small, frequently reused byte-level
// helpers that every TS-140 header record builds on: big-endian
// integer packing, blank-padded ASCII fields, and the fixed 16-byte
// XPORT date format.
package bytesutil

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// PutUint16BE writes v into b in big-endian order. b must be at least
// 2 bytes long.
func PutUint16BE(b []byte, v uint16) {
	binary.BigEndian.PutUint16(b, v)
}

// Uint16BE reads a big-endian uint16 from b. b must be at least 2
// bytes long.
func Uint16BE(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// PutUint32BE writes v into b in big-endian order. b must be at least
// 4 bytes long.
func PutUint32BE(b []byte, v uint32) {
	binary.BigEndian.PutUint32(b, v)
}

// Uint32BE reads a big-endian uint32 from b. b must be at least 4
// bytes long.
func Uint32BE(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// PadBlank encodes s as 7-bit ASCII and right-pads the result with
// 0x20 (blank) bytes to exactly length bytes. The caller is
// responsible for ensuring s is no longer than length.
func PadBlank(s string, length int) []byte {
	b := make([]byte, length)
	copy(b, s)
	for i := len(s); i < length; i++ {
		b[i] = ' '
	}
	return b
}

// TrimBlank decodes a fixed-width ASCII field, stripping trailing
// blank (0x20) bytes.
func TrimBlank(b []byte) string {
	return strings.TrimRight(string(b), " ")
}

// TrimBlankAndNul decodes a fixed-width ASCII field, stripping
// trailing blank (0x20) bytes and then trailing NUL (0x00) bytes. Used
// only for the real-header operating-system field, which SAS writes
// NUL-padded instead of blank-padded.
func TrimBlankAndNul(b []byte) string {
	s := strings.TrimRight(string(b), " ")
	return strings.TrimRight(s, "\x00")
}

// monthAbbrev are the uppercase English three-letter month
// abbreviations used by the XPORT date format, independent of locale.
var monthAbbrev = [...]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// TwoDigitYearFunc maps a two-digit year (0..99) as stored on disk to
// a full four-digit year.
type TwoDigitYearFunc func(yy int) int

// DefaultTwoDigitYear is the standard XPORT pivot: years below 60 are
// assumed to be in the 2000s, years 60 and above in the 1900s.
func DefaultTwoDigitYear(yy int) int {
	if yy < 60 {
		return 2000 + yy
	}
	return 1900 + yy
}

// EncodeDate16 formats t as the fixed 16-byte "ddMMMyy:hh:mm:ss" field.
// The year is truncated to its last two digits; callers that need a
// specific pivot should range-check before calling.
func EncodeDate16(t time.Time) ([16]byte, error) {
	var out [16]byte
	year := t.Year() % 100
	month := int(t.Month())
	if month < 1 || month > 12 {
		return out, fmt.Errorf("invalid month %d in date", month)
	}
	s := fmt.Sprintf("%02d%s%02d:%02d:%02d:%02d",
		t.Day(), monthAbbrev[month-1], year, t.Hour(), t.Minute(), t.Second())
	if len(s) != 16 {
		return out, fmt.Errorf("encoded date %q is not 16 bytes", s)
	}
	copy(out[:], s)
	return out, nil
}

// DecodeDate16 parses the fixed 16-byte "ddMMMyy:hh:mm:ss" field. It
// rejects any deviation from the exact pattern: two-digit day, three
// uppercase letter month, two-digit year, ':', two-digit hour, ':',
// two-digit minute, ':', two-digit second. pivot maps the two-digit
// year to a full year; if nil, DefaultTwoDigitYear is used.
func DecodeDate16(b [16]byte, pivot TwoDigitYearFunc) (time.Time, error) {
	if pivot == nil {
		pivot = DefaultTwoDigitYear
	}
	s := string(b[:])
	if len(s) != 16 || s[7] != ':' || s[10] != ':' || s[13] != ':' {
		return time.Time{}, fmt.Errorf("malformed date field %q", s)
	}
	day, err := parseDigits(s[0:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed day in date field %q: %w", s, err)
	}
	monthStr := s[2:5]
	month := -1
	for i, m := range monthAbbrev {
		if m == monthStr {
			month = i + 1
			break
		}
	}
	if month < 0 {
		return time.Time{}, fmt.Errorf("malformed month %q in date field %q", monthStr, s)
	}
	yy, err := parseDigits(s[5:7])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed year in date field %q: %w", s, err)
	}
	hour, err := parseDigits(s[8:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed hour in date field %q: %w", s, err)
	}
	minute, err := parseDigits(s[11:13])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed minute in date field %q: %w", s, err)
	}
	second, err := parseDigits(s[14:16])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed second in date field %q: %w", s, err)
	}
	year := pivot(yy)
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), nil
}

func parseDigits(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("expected digits, got %q", s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
