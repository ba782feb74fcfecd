package dirstat

import "errors"

var (
	// ErrInvalidPath is returned when the root path is empty after normalization,
	// does not exist, or is not a directory.
	ErrInvalidPath = errors.New("invalid root path")

	// ErrScanIO is returned when the filesystem walk fails.
	// Scans are fail-fast: the first error aborts the walk.
	ErrScanIO = errors.New("scanning directory tree")

	// ErrDivisionByZero is returned when a distribution is requested over a
	// non-empty inventory whose total size is zero.
	ErrDivisionByZero = errors.New("total size is zero")
)
