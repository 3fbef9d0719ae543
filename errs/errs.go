// Package errs defines the sentinel errors returned by redbin packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") so callers can test the
// failure class with errors.Is while still getting a descriptive message.
package errs

import "errors"

var (
	// ErrOutOfBounds is returned when a cursor read would run past either end of its buffer.
	ErrOutOfBounds = errors.New("read out of bounds")
	// ErrInvalidRange is returned when a sub-range extraction violates 0 <= start <= end <= length.
	ErrInvalidRange = errors.New("invalid byte range")
	// ErrStringTooLong is returned when a string does not fit the short-string length prefix.
	ErrStringTooLong = errors.New("string too long for short-string encoding")

	// ErrMalformedMetadata is returned when a dictionary header cannot be parsed in field order.
	ErrMalformedMetadata = errors.New("malformed dictionary metadata")

	// ErrFileAccess is returned when a column data file cannot be opened, seeked or read.
	ErrFileAccess = errors.New("data file access failed")
	// ErrInvalidColumn is returned for column metadata that cannot describe a valid layout.
	ErrInvalidColumn = errors.New("invalid column metadata")
	// ErrInvalidLevelTable is returned for level tables that are unsorted, duplicated or mispaired.
	ErrInvalidLevelTable = errors.New("invalid level table")

	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
