package imaging

import "errors"

// Error kinds shared by the grid operations and the container codecs.
//
// Callers branch on the kind with errors.Is; every error returned by this
// module wraps exactly one of these.
var (
	// ErrInvalidFormat reports a wrong or unsupported magic token or
	// maximum-sample combination, or a malformed header.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrTruncatedBody reports fewer bytes or tokens than the declared
	// dimensions require.
	ErrTruncatedBody = errors.New("truncated body")

	// ErrDimensionMismatch reports a two-grid operation given grids of
	// different sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrOutOfBounds reports a crop rectangle or pixel access outside the
	// grid extent.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrIOFailure reports an underlying read or write that could not
	// complete.
	ErrIOFailure = errors.New("i/o failure")

	// ErrInvalidParameter reports a scalar parameter an operation cannot
	// honor, such as a non-positive scale factor.
	ErrInvalidParameter = errors.New("invalid parameter")
)
