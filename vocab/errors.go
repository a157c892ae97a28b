package vocab

import "errors"

var (
	// ErrUnsupportedFormat is returned for word files that are neither
	// plain text nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported vocabulary file format")

	// ErrInvalidCoefficient is returned for thresholds outside (0, 1].
	ErrInvalidCoefficient = errors.New("coefficient must be in (0, 1]")
)
