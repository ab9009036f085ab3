package model

import "time"

// Epoch is the origin XPORT measures every NUMERIC date, time, and
// date-time value against: midnight, 1960-01-01. It carries no time
// zone of its own.
var Epoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// valueKind discriminates the payload a Value actually carries. A
// Value is immutable once constructed, so a closed kind tag (rather
// than a wider interface{} payload) keeps every accessor a cheap
// field read.
type valueKind int

const (
	kindText valueKind = iota
	kindNumber
	kindMissing
	kindDate
	kindLocalTime
	kindDateTime
)

// Value is one observation's slot for one variable. A CHARACTER slot
// holds a string. A NUMERIC slot holds one of: a real number, a
// MissingValue sentinel, a local calendar date, a local time of day,
// or a local date-time — the latter three are written as the day or
// second offset from Epoch per spec.md's writer contract, and are
// never produced by the reader (they arrive from disk as plain
// float64s). The zero Value is CHARACTER "" and is never confused
// with a NUMERIC missing value because the two are carried in
// disjoint fields.
type Value struct {
	kind    valueKind
	number  float64
	missing MissingValue
	text    string
	when    time.Time
}

// Numeric constructs a NUMERIC Value holding a real number.
func Numeric(v float64) Value {
	return Value{kind: kindNumber, number: v}
}

// Missing constructs a NUMERIC Value holding the missing-value
// sentinel m.
func Missing(m MissingValue) Value {
	return Value{kind: kindMissing, missing: m}
}

// Text constructs a CHARACTER Value. An all-blank string normalizes
// to MissingStandard on read per spec.md's CHARACTER missing-value
// rule, but Text itself stores whatever s is given; normalization
// happens in the reader, not here.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Date constructs a NUMERIC Value holding a local calendar date,
// encoded on write as the whole number of days between Epoch and t;
// t's time-of-day components are ignored. t must carry time.UTC as
// its Location — XPORT's epoch has no time zone of its own, so a
// Location other than UTC is treated as an implicit, unaccounted-for
// zone and is rejected by the writer rather than silently remapped.
func Date(t time.Time) Value {
	return Value{kind: kindDate, when: t}
}

// LocalTime constructs a NUMERIC Value holding a time of day, encoded
// on write as seconds since midnight; t's date components are
// ignored. t must carry time.UTC as its Location, as with Date.
func LocalTime(t time.Time) Value {
	return Value{kind: kindLocalTime, when: t}
}

// DateTime constructs a NUMERIC Value holding a local date-time,
// encoded on write as seconds between Epoch and t. t must carry
// time.UTC as its Location, as with Date.
func DateTime(t time.Time) Value {
	return Value{kind: kindDateTime, when: t}
}

// IsNumeric reports whether the value occupies a NUMERIC slot: a real
// number, a missing sentinel, or a date/time/date-time.
func (v Value) IsNumeric() bool { return v.kind != kindText }

// IsMissing reports whether a NUMERIC value is a missing-value
// sentinel. Always false for CHARACTER values.
func (v Value) IsMissing() bool { return v.kind == kindMissing }

// Number returns the stored float64. The second return is false
// unless the value was constructed with Numeric.
func (v Value) Number() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.number, true
}

// MissingValue returns the stored sentinel. The second return is
// false unless the value was constructed with Missing.
func (v Value) MissingValue() (MissingValue, bool) {
	if v.kind != kindMissing {
		return 0, false
	}
	return v.missing, true
}

// Text returns the stored string. The second return is false if the
// value is NUMERIC.
func (v Value) Text() (string, bool) {
	if v.kind != kindText {
		return "", false
	}
	return v.text, true
}

// Date returns the stored time. The second return is false unless the
// value was constructed with Date.
func (v Value) Date() (time.Time, bool) {
	if v.kind != kindDate {
		return time.Time{}, false
	}
	return v.when, true
}

// LocalTime returns the stored time. The second return is false
// unless the value was constructed with LocalTime.
func (v Value) LocalTime() (time.Time, bool) {
	if v.kind != kindLocalTime {
		return time.Time{}, false
	}
	return v.when, true
}

// DateTime returns the stored time. The second return is false unless
// the value was constructed with DateTime.
func (v Value) DateTime() (time.Time, bool) {
	if v.kind != kindDateTime {
		return time.Time{}, false
	}
	return v.when, true
}

// Observation is one row of a dataset: one Value per variable, in
// variable-number order.
type Observation []Value
