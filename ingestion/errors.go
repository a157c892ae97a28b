package ingestion

import "errors"

var (
	// ErrNoItems is returned when no feed could be read.
	ErrNoItems = errors.New("no items read from any feed")

	// ErrUnexpectedStatus is returned when a server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrFeedParse is returned when a response body is not a readable feed.
	ErrFeedParse = errors.New("failed to parse feed")

	// ErrFeedClientRequired is returned when a nil feed client is provided.
	ErrFeedClientRequired = errors.New("feed client required")

	// ErrCleanerRequired is returned when a nil cleaner is provided.
	ErrCleanerRequired = errors.New("cleaner required")
)

// ErrUnitPanicked wraps a panic recovered from a pooled fetch.
var ErrUnitPanicked = errors.New("pooled task panicked")
