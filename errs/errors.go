// Package errs defines the sentinel errors returned by fixfmt packages.
//
// Errors are wrapped with additional context at the call site using fmt.Errorf
// and the %w verb, so callers should match them with errors.Is:
//
//	desc, err := infer.Infer(samples, 1e-3)
//	if errors.Is(err, errs.ErrToleranceUnreachable) {
//	    // relax the tolerance
//	}
package errs

import "errors"

// Format inference errors.
var (
	// ErrEmptyInput is returned when inference is asked to run on an empty sample set.
	ErrEmptyInput = errors.New("empty sample set")

	// ErrInvalidTolerance is returned when the tolerance is not a positive finite number.
	ErrInvalidTolerance = errors.New("invalid tolerance")

	// ErrInvalidSample is returned when a sample is NaN or infinite.
	ErrInvalidSample = errors.New("invalid sample")

	// ErrToleranceUnreachable is returned when no fractional width within the
	// search bound keeps every sample inside the tolerance.
	ErrToleranceUnreachable = errors.New("tolerance unreachable")
)

// Binding errors.
var (
	// ErrValueOutOfRange is returned when a value cannot be represented by a format.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrSynthesisFailure is returned when a format handle cannot be built,
	// either because the descriptor is malformed or it exceeds the supported width.
	ErrSynthesisFailure = errors.New("format synthesis failed")

	// ErrFormatMismatch is returned when two values of different formats are combined.
	ErrFormatMismatch = errors.New("format mismatch")
)

// Storage errors.
var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNotFound         = errors.New("entry not found")
	ErrInvalidColumn    = errors.New("invalid column data")
	ErrChecksumMismatch = errors.New("column checksum mismatch")
)

// ErrInvalidOption is returned when a functional option receives an invalid argument.
var ErrInvalidOption = errors.New("invalid option")
