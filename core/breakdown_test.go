package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceBreakdown_Net(t *testing.T) {
	b := RelevanceBreakdown{Creator: 10, Categories: 5, Keywords: 10, Title: 20, Description: 3, Body: 7}
	assert.Equal(t, uint64(48), b.Subtotal())
	assert.Equal(t, uint64(55), b.Net())
	assert.Equal(t, uint64(0), RelevanceBreakdown{Errored: true}.Net())
}

func TestRelevanceBreakdown_Compare(t *testing.T) {
	errored := RelevanceBreakdown{Errored: true}
	low := RelevanceBreakdown{Creator: 10}
	high := RelevanceBreakdown{Creator: 10, Title: 10}
	lowWithBody := RelevanceBreakdown{Creator: 10, Body: 50}

	t.Run("non-error ranks above error", func(t *testing.T) {
		assert.Equal(t, 1, RelevanceBreakdown{}.Compare(errored))
		assert.Equal(t, -1, errored.Compare(RelevanceBreakdown{}))
		assert.Equal(t, 0, errored.Compare(errored))
	})

	t.Run("subtotal decides before body", func(t *testing.T) {
		assert.Equal(t, 1, high.Compare(lowWithBody))
		assert.Equal(t, -1, lowWithBody.Compare(high))
	})

	t.Run("body breaks subtotal ties", func(t *testing.T) {
		assert.Equal(t, 1, lowWithBody.Compare(low))
		assert.Equal(t, 0, low.Compare(low))
	})
}
