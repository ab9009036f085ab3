// Package options implements the functional-options pattern used by
// the root xport package's Reader and Writer constructors.
package options

import (
	"github.com/go-xport/xport-kit/pkg/bytesutil"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/model"
)

// ReaderOptions holds a Reader's construction-time configuration.
type ReaderOptions struct {
	Strictness        model.Strictness
	Logger            *logging.Logger
	TwoDigitYearPivot bytesutil.TwoDigitYearFunc
}

// ReaderOption mutates a ReaderOptions during Reader construction.
type ReaderOption func(*ReaderOptions)

// DefaultReaderOptions returns the options a Reader is constructed
// with when no ReaderOption is given: FDASubmission strictness (the
// safer default for a format whose primary consumer is regulatory
// submission) and a discarding logger.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Strictness: model.FDASubmission,
		Logger:     logging.DefaultLogger(),
	}
}

// WithReaderStrictness sets ReaderOptions.Strictness. ReadLibrary
// validates decoded metadata at model.Basic regardless of this
// setting.
func WithReaderStrictness(s model.Strictness) ReaderOption {
	return func(o *ReaderOptions) {
		o.Strictness = s
	}
}

// WithReaderLogger sets the Reader's logger.
func WithReaderLogger(logger *logging.Logger) ReaderOption {
	return func(o *ReaderOptions) {
		o.Logger = logger
	}
}

// WithTwoDigitYearPivot overrides the default two-digit-year pivot
// (bytesutil.DefaultTwoDigitYear) used to interpret the YY field of
// every XPORT date.
func WithTwoDigitYearPivot(pivot bytesutil.TwoDigitYearFunc) ReaderOption {
	return func(o *ReaderOptions) {
		o.TwoDigitYearPivot = pivot
	}
}

// WriterOptions holds a Writer's construction-time configuration.
type WriterOptions struct {
	Strictness model.Strictness
	Logger     *logging.Logger
}

// WriterOption mutates a WriterOptions during Writer construction.
type WriterOption func(*WriterOptions)

// DefaultWriterOptions returns the options a Writer is constructed
// with when no WriterOption is given.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Strictness: model.FDASubmission,
		Logger:     logging.DefaultLogger(),
	}
}

// WithWriterStrictness sets the strictness mode a Writer validates
// the dataset description and every appended observation against.
func WithWriterStrictness(s model.Strictness) WriterOption {
	return func(o *WriterOptions) {
		o.Strictness = s
	}
}

// WithWriterLogger sets the Writer's logger.
func WithWriterLogger(logger *logging.Logger) WriterOption {
	return func(o *WriterOptions) {
		o.Logger = logger
	}
}
