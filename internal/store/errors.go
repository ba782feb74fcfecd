package store

import "errors"

var (
	// ErrPersistence wraps every store-level failure while writing a table.
	ErrPersistence = errors.New("persisting analysis")

	// ErrTableExists is returned by WriteTable in Fail mode when the table is present.
	ErrTableExists = errors.New("table already exists")

	// ErrUnknownDriver is returned for a driver name other than sqlite or duckdb.
	ErrUnknownDriver = errors.New("unknown driver")

	// ErrClosed is returned when using a closed store.
	ErrClosed = errors.New("store is closed")
)
