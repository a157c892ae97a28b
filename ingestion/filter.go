package ingestion

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/poiesic/hemeroteca/core"
)

// FilterOptIn keeps the items whose categories or keywords contain the
// opt-in terms and returns them in random order.
//
// A term matches when it is a substring of the item's categories or of
// its keywords. OperatorAnd requires every term, OperatorOr at least one.
// With no terms the input is returned unchanged.
func FilterOptIn(items []core.Item, terms []string, op core.Operator) []core.Item {
	return NewFilter(terms, op).Apply(items)
}

// Filter is a reusable opt-in filter.
type Filter struct {
	terms    []string
	operator core.Operator
	rng      *rand.Rand
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithRand sets the source used to shuffle survivors.
// Default is the global math/rand/v2 source. A filter with its own
// source must not be applied concurrently.
func WithRand(rng *rand.Rand) FilterOption {
	return func(f *Filter) {
		f.rng = rng
	}
}

// NewFilter creates a filter for the given terms.
func NewFilter(terms []string, op core.Operator, opts ...FilterOption) *Filter {
	f := &Filter{
		terms:    slices.Clone(terms),
		operator: op,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Terms returns the opt-in terms.
func (f *Filter) Terms() []string {
	return slices.Clone(f.terms)
}

// Operator returns how terms are combined.
func (f *Filter) Operator() core.Operator {
	return f.operator
}

// Empty reports whether the filter lets every item through.
func (f *Filter) Empty() bool {
	return len(f.terms) == 0
}

// Apply returns the shuffled survivors, or items itself when the filter
// is empty.
func (f *Filter) Apply(items []core.Item) []core.Item {
	if f.Empty() {
		return items
	}

	kept := make([]core.Item, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	f.Shuffle(kept)
	return kept
}

// Matches reports whether item opts in.
func (f *Filter) Matches(item *core.Item) bool {
	if f.Empty() {
		return true
	}

	found := func(term string) bool {
		return strings.Contains(item.Categories, term) || strings.Contains(item.Keywords, term)
	}

	if f.operator == core.OperatorAnd {
		for _, term := range f.terms {
			if !found(term) {
				return false
			}
		}
		return true
	}
	for _, term := range f.terms {
		if found(term) {
			return true
		}
	}
	return false
}

// Shuffle reorders items in place using the filter's source.
func (f *Filter) Shuffle(items []core.Item) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if f.rng != nil {
		f.rng.Shuffle(len(items), swap)
		return
	}
	rand.Shuffle(len(items), swap)
}

// Shuffle reorders items in place.
func Shuffle(items []core.Item) {
	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
