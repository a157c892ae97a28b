package tabular

import "errors"

var (
	// ErrNoRecords is returned when writing an empty corpus to Parquet.
	ErrNoRecords = errors.New("no records to write")

	// ErrBadHeader is returned when a CSV file does not start with the expected header.
	ErrBadHeader = errors.New("unexpected csv header")

	// ErrBadRow is returned when a row cannot be decoded into a record.
	ErrBadRow = errors.New("malformed row")
)
