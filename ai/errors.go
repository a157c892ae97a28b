package ai

import "errors"

var (
	// ErrServiceUnavailable is returned while the embedding circuit is open.
	ErrServiceUnavailable = errors.New("embedding service unavailable")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("ai config")
)

// ErrEmptyEmbedding is returned when the service answers with a zero-length vector.
var ErrEmptyEmbedding = errors.New("empty embedding")

// ErrDimensionMismatch is returned when the embedding service changes the
// vector length within one run.
var ErrDimensionMismatch = errors.New("embedding dimensionality changed")
