package core

import (
	"fmt"
	"strings"
)

// PipelineErrorKind identifies the variant of a PipelineError.
type PipelineErrorKind int

const (
	// EmptyInput means there was nothing to process.
	EmptyInput PipelineErrorKind = iota + 1
	// ParseFailure means the content could not be read or parsed.
	ParseFailure
	// NoContent means cleaning produced no text.
	NoContent
	// NetworkFailure means the content could not be fetched.
	NetworkFailure
	// Unknown is any other terminal failure.
	Unknown
)

var kindNames = map[PipelineErrorKind]string{
	EmptyInput:     "EmptyInput",
	ParseFailure:   "ParseFailure",
	NoContent:      "NoContent",
	NetworkFailure: "NetworkFailure",
	Unknown:        "Unknown",
}

// kindsByName also accepts the names written by earlier releases.
var kindsByName = map[string]PipelineErrorKind{
	"EmptyInput":     EmptyInput,
	"ParseFailure":   ParseFailure,
	"NoContent":      NoContent,
	"NetworkFailure": NetworkFailure,
	"Unknown":        Unknown,
	"EmptyString":    EmptyInput,
	"ParsingError":   ParseFailure,
	"NetworkError":   NetworkFailure,
	"UnknownError":   Unknown,
}

// String returns the canonical name of the kind.
func (k PipelineErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PipelineErrorKind(%d)", int(k))
}

// HasDetail reports whether the kind carries a detail payload.
func (k PipelineErrorKind) HasDetail() bool {
	return k == ParseFailure || k == NetworkFailure
}

// PipelineError is a terminal per-item failure recorded on an Item.
// Its canonical text form is the kind name, followed by the detail in
// parentheses for kinds that carry one, e.g. "ParseFailure(bad gzip)".
type PipelineError struct {
	Kind   PipelineErrorKind
	Detail string
}

// NewEmptyInput returns an EmptyInput error.
func NewEmptyInput() *PipelineError { return &PipelineError{Kind: EmptyInput} }

// NewParseFailure returns a ParseFailure error with detail.
func NewParseFailure(detail string) *PipelineError {
	return &PipelineError{Kind: ParseFailure, Detail: detail}
}

// NewNoContent returns a NoContent error.
func NewNoContent() *PipelineError { return &PipelineError{Kind: NoContent} }

// NewNetworkFailure returns a NetworkFailure error with detail.
func NewNetworkFailure(detail string) *PipelineError {
	return &PipelineError{Kind: NetworkFailure, Detail: detail}
}

// NewUnknown returns an Unknown error.
func NewUnknown() *PipelineError { return &PipelineError{Kind: Unknown} }

// String returns the canonical text form.
func (e PipelineError) String() string {
	if e.Kind.HasDetail() {
		return e.Kind.String() + "(" + e.Detail + ")"
	}
	return e.Kind.String()
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	return e.String()
}

// Is matches another PipelineError of the same kind, ignoring detail.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Kind == e.Kind
}

// MarshalText implements encoding.TextMarshaler.
func (e PipelineError) MarshalText() ([]byte, error) {
	if _, ok := kindNames[e.Kind]; !ok {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidPipelineError, int(e.Kind))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *PipelineError) UnmarshalText(text []byte) error {
	parsed, err := ParsePipelineError(string(text))
	if err != nil {
		return err
	}
	*e = *parsed
	return nil
}

// ParsePipelineError parses the canonical text form of a PipelineError.
// The detail spans from the first "(" to the final ")", so details may
// themselves contain parentheses.
func ParsePipelineError(s string) (*PipelineError, error) {
	name, detail, hasDetail := s, "", false
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("%w: unterminated detail in %q", ErrInvalidPipelineError, s)
		}
		name, detail, hasDetail = s[:open], s[open+1:len(s)-1], true
	}

	kind, ok := kindsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidPipelineError, name)
	}
	if hasDetail != kind.HasDetail() {
		return nil, fmt.Errorf("%w: %s detail mismatch in %q", ErrInvalidPipelineError, kind, s)
	}
	return &PipelineError{Kind: kind, Detail: detail}, nil
}
