package core

import (
	"cmp"
	"fmt"
	"time"
)

// RelevanceBreakdown explains a lexical relevance score.
// When Errored is set every component is zero.
type RelevanceBreakdown struct {
	Errored     bool
	Creator     uint64
	Categories  uint64
	Keywords    uint64
	Title       uint64
	Description uint64
	Body        uint64 // Computed in a separate pass over the clean content
	Elapsed     time.Duration
}

// Subtotal returns the sum of the five structured-field components.
func (b RelevanceBreakdown) Subtotal() uint64 {
	return b.Creator + b.Categories + b.Keywords + b.Title + b.Description
}

// Net returns the sum of all six components.
func (b RelevanceBreakdown) Net() uint64 {
	return b.Subtotal() + b.Body
}

// Compare orders breakdowns: a non-error breakdown ranks above an error
// one, then the five-component subtotal decides, then the body component.
// It returns -1, 0 or +1 like cmp.Compare.
func (b RelevanceBreakdown) Compare(other RelevanceBreakdown) int {
	if b.Errored != other.Errored {
		if b.Errored {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.Subtotal(), other.Subtotal()); c != 0 {
		return c
	}
	return cmp.Compare(b.Body, other.Body)
}

func (b RelevanceBreakdown) String() string {
	return fmt.Sprintf("error=%t creator=%d categories=%d keywords=%d title=%d description=%d body=%d net=%d elapsed=%s",
		b.Errored, b.Creator, b.Categories, b.Keywords, b.Title, b.Description, b.Body, b.Net(), b.Elapsed)
}
