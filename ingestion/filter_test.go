package ingestion

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
)

func item(link, categories, keywords string) core.Item {
	return core.Item{
		Title:       "t " + link,
		Link:        link,
		Description: "d",
		Categories:  categories,
		Keywords:    keywords,
	}
}

func links(items []core.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Link
	}
	return out
}

func TestFilterOptIn(t *testing.T) {
	items := []core.Item{
		item("1", "política,economía", ""),
		item("2", "", "gobierno,crisis"),
		item("3", "deportes", "fútbol"),
		item("4", "economía", "crisis"),
		item("5", "", ""),
	}

	tests := []struct {
		name  string
		terms []string
		op    core.Operator
		want  []string
	}{
		{"no terms keeps everything in order", nil, core.OperatorOr, []string{"1", "2", "3", "4", "5"}},
		{"no terms with and", []string{}, core.OperatorAnd, []string{"1", "2", "3", "4", "5"}},
		{"or matches any term", []string{"crisis", "deportes"}, core.OperatorOr, []string{"2", "3", "4"}},
		{"and needs every term", []string{"economía", "crisis"}, core.OperatorAnd, []string{"4"}},
		{"substring not token", []string{"econ"}, core.OperatorOr, []string{"1", "4"}},
		{"terms are case sensitive", []string{"Crisis"}, core.OperatorOr, []string{}},
		{"and across categories and keywords", []string{"deportes", "fútbol"}, core.OperatorAnd, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOptIn(items, tt.terms, tt.op)
			if len(tt.terms) == 0 {
				assert.Equal(t, tt.want, links(got))
				return
			}
			assert.ElementsMatch(t, tt.want, links(got))
		})
	}
}

func TestFilter_EmptyReturnsSameSlice(t *testing.T) {
	items := []core.Item{item("a", "", ""), item("b", "", "")}
	got := NewFilter(nil, core.OperatorOr).Apply(items)
	require.Len(t, got, 2)
	assert.Same(t, &items[0], &got[0])
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	items := make([]core.Item, 20)
	for i := range items {
		items[i] = item(string(rune('a'+i)), "x", "")
	}
	before := links(items)

	got := NewFilter([]string{"x"}, core.OperatorOr, WithRand(rand.New(rand.NewPCG(1, 2)))).Apply(items)

	assert.Equal(t, before, links(items))
	assert.ElementsMatch(t, before, links(got))
}

func TestFilter_ShuffleIsSeeded(t *testing.T) {
	items := make([]core.Item, 30)
	for i := range items {
		items[i] = item(string(rune('A'+i)), "x", "")
	}

	first := NewFilter([]string{"x"}, core.OperatorOr, WithRand(rand.New(rand.NewPCG(7, 7)))).Apply(items)
	second := NewFilter([]string{"x"}, core.OperatorOr, WithRand(rand.New(rand.NewPCG(7, 7)))).Apply(items)

	assert.Equal(t, links(first), links(second))
	assert.NotEqual(t, links(items), links(first))
}

func TestFilter_Matches(t *testing.T) {
	f := NewFilter([]string{"a", "b"}, core.OperatorAnd)
	both := item("1", "a", "b")
	one := item("2", "a", "")

	assert.True(t, f.Matches(&both))
	assert.False(t, f.Matches(&one))
	assert.Equal(t, []string{"a", "b"}, f.Terms())
	assert.Equal(t, core.OperatorAnd, f.Operator())
	assert.False(t, f.Empty())
}

func TestShuffle_KeepsElements(t *testing.T) {
	items := []core.Item{item("1", "", ""), item("2", "", ""), item("3", "", "")}
	Shuffle(items)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, links(items))
}
