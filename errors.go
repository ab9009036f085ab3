package xport

import "fmt"

// MalformedTransportError reports that a byte stream does not follow
// the TS-140 Transport record structure: a missing or corrupt
// sentinel, a short record, or a field that fails to parse under its
// fixed grammar.
type MalformedTransportError struct {
	Reason string
	Err    error
}

func (e *MalformedTransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed transport: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed transport: %s", e.Reason)
}

func (e *MalformedTransportError) Unwrap() error { return e.Err }

// UnsupportedTransportError reports a structurally valid stream this
// package does not implement: the SAS V8 extension or the compressed
// CPORT variant. MultipleDatasetsError specializes it.
type UnsupportedTransportError struct {
	Reason string
}

func (e *UnsupportedTransportError) Error() string {
	return fmt.Sprintf("unsupported transport: %s", e.Reason)
}

// MultipleDatasetsError reports a library containing a second MEMBER
// HEADER after the first dataset's observations. It specializes
// UnsupportedTransportError: every MultipleDatasetsError also matches
// errors.As against *UnsupportedTransportError.
type MultipleDatasetsError struct {
	UnsupportedTransportError
}

// NewMultipleDatasetsError constructs a MultipleDatasetsError with
// its fixed reason text.
func NewMultipleDatasetsError() *MultipleDatasetsError {
	return &MultipleDatasetsError{
		UnsupportedTransportError{Reason: "library contains more than one dataset, which this package does not support"},
	}
}

// Unwrap exposes the embedded UnsupportedTransportError so
// errors.As(err, &(*UnsupportedTransportError)(nil)) matches a
// *MultipleDatasetsError. Struct embedding alone only promotes
// methods, not errors.As matching; this makes the specialization
// relationship actually hold for callers inspecting errors.
func (e *MultipleDatasetsError) Unwrap() error { return &e.UnsupportedTransportError }

// InvalidArgumentError reports a caller-supplied value that fails
// validation: an illegal name, an out-of-range length, a duplicate
// variable.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// InvalidStateError reports a call made against a Writer outside its
// valid protocol: Append after Close. A Reader that has already
// reported an error re-raises that same error instead.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.Reason)
}

// IOError wraps an error returned by the underlying io.Reader or
// io.Writer.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("xport: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
