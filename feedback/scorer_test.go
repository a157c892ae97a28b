package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func rated(link string, relevance float64, title, bow []float32) core.FeedbackRecord {
	item := core.Item{Title: "t " + link, Link: link, Description: "d"}.WithRelevance(relevance)
	return core.FeedbackRecord{Item: item, TitleEmbedding: title, BowEmbedding: bow, FeedbackDate: fixedNow}
}

func newScorer(t *testing.T, records []core.FeedbackRecord, opts ...Option) *Scorer {
	t.Helper()
	corpus, err := NewCorpus(records)
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewScorer(corpus, opts...)
	require.NoError(t, err)
	return s
}

func TestScorer_Score(t *testing.T) {
	x := []float32{1, 0, 0}
	y := []float32{0, 1, 0}
	z := []float32{0, 0, 1}

	t.Run("nothing above threshold scores zero", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{
			rated("a", 0.5, x, x),
			rated("b", 0.7, y, y),
		})
		assert.Equal(t, 0.0, s.Score(core.Item{}, z, z))
	})

	t.Run("averages passing records unweighted", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{
			rated("a", 2, x, x),
			rated("b", 4, x, x),
			rated("c", 5, y, y),
		})
		assert.InDelta(t, 3.0, s.Score(core.Item{}, x, z), 1e-9)
	})

	t.Run("threshold is strict", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", 3, x, x)}, WithThreshold(1.0))
		assert.Equal(t, 0.0, s.Score(core.Item{}, x, x))
	})

	t.Run("takes the larger of title and bag of words", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{
			rated("a", 1, x, z),
			rated("b", 5, y, z),
		})
		assert.InDelta(t, 5.0, s.Score(core.Item{}, x, y), 1e-9)
	})

	t.Run("decays by age", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", 0.6, x, x)})
		item := core.Item{PubDate: fixedNow.Add(-3 * 24 * time.Hour).Format(time.RFC1123Z)}
		assert.InDelta(t, 0.42, s.Score(item, x, z), 1e-9)
	})

	t.Run("decay floors at seventy percent", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", 1, x, x)})
		item := core.Item{PubDate: fixedNow.Add(-30 * 24 * time.Hour).Format(time.RFC1123Z)}
		assert.InDelta(t, 0.7, s.Score(item, x, z), 1e-9)
	})

	t.Run("future dates do not boost", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", 1, x, x)})
		item := core.Item{PubDate: fixedNow.Add(72 * time.Hour).Format(time.RFC1123Z)}
		assert.InDelta(t, 1.0, s.Score(item, x, z), 1e-9)
	})

	t.Run("unparseable date applies no decay", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", 1, x, x)})
		assert.InDelta(t, 1.0, s.Score(core.Item{PubDate: "ayer"}, x, z), 1e-9)
	})

	t.Run("negative ratings clamp to zero", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", -2, x, x)})
		assert.Equal(t, 0.0, s.Score(core.Item{}, x, x))
	})

	t.Run("dimension mismatch panics", func(t *testing.T) {
		s := newScorer(t, []core.FeedbackRecord{rated("a", 1, x, x)})
		assert.Panics(t, func() { s.Score(core.Item{}, []float32{1, 0}, x) })
	})

	t.Run("empty corpus scores zero", func(t *testing.T) {
		s := newScorer(t, nil)
		assert.Equal(t, 0.0, s.Score(core.Item{}, x, x))
	})
}

func TestScorer_CompareMode(t *testing.T) {
	x := []float32{1, 0}
	y := []float32{0, 1}

	// The record's title points at x, its bag of words at y.
	records := []core.FeedbackRecord{rated("a", 4, x, y)}

	titleOnly := newScorer(t, records)
	matched := newScorer(t, records, WithCompareMode(CompareMatched))

	// A bag-of-words query equal to the stored bag of words only matches
	// when bags of words are compared to each other.
	assert.Equal(t, 0.0, titleOnly.Score(core.Item{}, y, y))
	assert.InDelta(t, 4.0, matched.Score(core.Item{}, y, y), 1e-9)

	// A bag-of-words query equal to the stored title matches in title mode.
	assert.InDelta(t, 4.0, titleOnly.Score(core.Item{}, y, x), 1e-9)
	assert.Equal(t, 0.0, matched.Score(core.Item{}, y, x))
}

func TestScorer_MissingBagOfWords(t *testing.T) {
	x := []float32{1, 0}
	records := []core.FeedbackRecord{rated("a", 4, x, []float32{0, 0})}

	for _, mode := range []CompareMode{CompareTitleOnly, CompareMatched} {
		t.Run(mode.String(), func(t *testing.T) {
			s := newScorer(t, records, WithCompareMode(mode))
			assert.NotPanics(t, func() {
				assert.InDelta(t, 4.0, s.Score(core.Item{}, x, nil), 1e-9)
				assert.Equal(t, 0.0, s.Score(core.Item{}, nil, nil))
			})
		})
	}
}

func TestParseCompareMode(t *testing.T) {
	mode, ok := ParseCompareMode("matched")
	assert.True(t, ok)
	assert.Equal(t, CompareMatched, mode)

	mode, ok = ParseCompareMode("")
	assert.True(t, ok)
	assert.Equal(t, CompareTitleOnly, mode)

	_, ok = ParseCompareMode("bow")
	assert.False(t, ok)
}

func TestScore_OneShot(t *testing.T) {
	x := []float32{1, 0}
	records := []core.FeedbackRecord{rated("a", 0.5, x, x), rated("b", 0.7, x, x)}
	assert.InDelta(t, 0.6, Score(core.Item{}, x, x, records, 0.5), 1e-9)
	assert.Equal(t, 0.0, Score(core.Item{}, []float32{0, 1}, []float32{0, 1}, records, 0.5))
}

func TestNewCorpus(t *testing.T) {
	t.Run("rejects mixed dimensions", func(t *testing.T) {
		_, err := NewCorpus([]core.FeedbackRecord{
			rated("a", 1, []float32{1, 0}, []float32{1, 0}),
			rated("b", 1, []float32{1, 0, 0}, []float32{1, 0, 0}),
		})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		_, err := NewCorpus([]core.FeedbackRecord{{Item: core.Item{Link: "x"}}})
		assert.ErrorIs(t, err, core.ErrInvalidFeedbackRecord)
	})

	t.Run("copies embeddings", func(t *testing.T) {
		title := []float32{1, 0}
		c, err := NewCorpus([]core.FeedbackRecord{rated("a", 1, title, []float32{0, 1})})
		require.NoError(t, err)
		title[0] = 9
		assert.Equal(t, float32(1), c.Records()[0].TitleEmbedding[0])
		assert.Equal(t, 2, c.Dims())
		assert.Equal(t, 1, c.Len())
	})
}
