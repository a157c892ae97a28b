package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/ai/mock"
	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
	"github.com/poiesic/hemeroteca/vocab"
)

func TestLexicalScorer(t *testing.T) {
	s, err := NewLexicalScorer(vocab.FromTerms("Gobierno"))
	require.NoError(t, err)

	scored, err := s.Score(context.Background(), core.Item{Title: "El Gobierno", Creators: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, 20.0, scored.RelevanceOrZero())
	require.NotNil(t, scored.Breakdown)
	assert.Equal(t, uint64(10), scored.Breakdown.Title)

	errored, err := s.Score(context.Background(), core.Item{Title: "El Gobierno", Error: core.NewNoContent()})
	require.NoError(t, err)
	assert.Equal(t, 0.0, errored.RelevanceOrZero())
	assert.NotNil(t, errored.Relevance)
	assert.True(t, errored.Breakdown.Errored)

	_, err = NewLexicalScorer(nil)
	assert.ErrorIs(t, err, ErrVocabularyRequired)
}

func TestCompositeScorer(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	embedder := mock.NewMockEmbedder()
	embedder.Dimensions = 16

	rated := core.Item{Title: "Reforma fiscal", Link: "rated", Description: "d", Keywords: "economía"}.WithRelevance(4)
	records, err := feedback.BuildRecords(ctx, embedder, []core.Item{rated}, now)
	require.NoError(t, err)
	corpus, err := feedback.NewCorpus(records)
	require.NoError(t, err)
	fb, err := feedback.NewScorer(corpus, feedback.WithThreshold(0.99), feedback.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	s, err := NewCompositeScorer(vocab.FromTerms("Reforma"), embedder, fb)
	require.NoError(t, err)

	t.Run("same title matches the rated item", func(t *testing.T) {
		item := core.Item{Title: "Reforma fiscal", Link: "new", Description: "d"}
		scored, err := s.Score(ctx, item)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, scored.RelevanceOrZero(), 1e-6)
		require.NotNil(t, scored.Breakdown)
		assert.Equal(t, uint64(10), scored.Breakdown.Title)
	})

	t.Run("errored items score zero without embedding", func(t *testing.T) {
		before := embedder.CallCount()
		scored, err := s.Score(ctx, core.Item{Title: "Reforma fiscal", Error: core.NewNetworkFailure("timeout")})
		require.NoError(t, err)
		assert.Equal(t, 0.0, scored.RelevanceOrZero())
		assert.Equal(t, before, embedder.CallCount())
	})

	t.Run("embedder failures are returned", func(t *testing.T) {
		failing := mock.NewMockEmbedder()
		failing.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return nil, errors.New("unavailable")
		}
		broken, err := NewCompositeScorer(vocab.New(), failing, fb)
		require.NoError(t, err)

		_, err = broken.Score(ctx, core.Item{Title: "x", Link: "x", Description: "d"})
		assert.Error(t, err)
	})

	t.Run("no bag of words sends only the title", func(t *testing.T) {
		strict := mock.NewMockEmbedder()
		strict.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				if text == "" {
					return nil, errors.New("input must not be empty")
				}
				out[i] = mock.DeterministicVector(text, 16)
			}
			return out, nil
		}
		matched, err := feedback.NewScorer(corpus, feedback.WithThreshold(0.99),
			feedback.WithCompareMode(feedback.CompareMatched), feedback.WithClock(func() time.Time { return now }))
		require.NoError(t, err)
		s, err := NewCompositeScorer(vocab.FromTerms("Reforma"), strict, matched)
		require.NoError(t, err)

		scored, err := s.Score(ctx, core.Item{Title: "Reforma fiscal", Link: "bare", Description: "d"})
		require.NoError(t, err)
		assert.InDelta(t, 4.0, scored.RelevanceOrZero(), 1e-6)
		assert.Equal(t, []string{"Reforma fiscal"}, strict.Texts())
	})

	t.Run("requires collaborators", func(t *testing.T) {
		_, err := NewCompositeScorer(nil, embedder, fb)
		assert.ErrorIs(t, err, ErrVocabularyRequired)
		_, err = NewCompositeScorer(vocab.New(), nil, fb)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
		_, err = NewCompositeScorer(vocab.New(), embedder, nil)
		assert.ErrorIs(t, err, ErrFeedbackScorerRequired)
	})
}
