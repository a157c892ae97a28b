package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/ai/mock"
	"github.com/poiesic/hemeroteca/core"
)

func TestBuildRecords(t *testing.T) {
	ctx := context.Background()
	items := []core.Item{
		core.Item{Title: "Reforma fiscal", Link: "a", Description: "d", Keywords: "Economía", Categories: "política"}.WithRelevance(4),
		{Title: "Caída de la red", Link: "b", Description: "d", Error: core.NewNoContent()},
		core.Item{Title: "Elecciones", Link: "c", Description: "d"}.WithRelevance(2),
	}

	t.Run("embeds title and bag of words", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.Dimensions = 8

		records, err := BuildRecords(ctx, embedder, items, fixedNow)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "a", records[0].Item.Link)
		assert.Equal(t, mock.DeterministicVector("Reforma fiscal", 8), records[0].TitleEmbedding)
		assert.Equal(t, mock.DeterministicVector("economía política", 8), records[0].BowEmbedding)
		assert.Equal(t, fixedNow, records[0].FeedbackDate)
		assert.Equal(t, 4.0, records[0].KnownRelevance())
		assert.Equal(t, 2, embedder.CallCount())

		assert.Equal(t, make([]float32, 8), records[1].BowEmbedding, "no bag of words stores a zero vector")
		assert.Equal(t, []string{"Reforma fiscal", "economía política", "Elecciones"}, embedder.Texts())
	})

	t.Run("propagates embedder errors", func(t *testing.T) {
		boom := errors.New("boom")
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) { return nil, boom }

		_, err := BuildRecords(ctx, embedder, items, fixedNow)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rejects short embedder responses", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return [][]float32{{1}}, nil
		}
		_, err := BuildRecords(ctx, embedder, items, fixedNow)
		assert.ErrorIs(t, err, ErrEmbeddingCount)
	})

	t.Run("requires an embedder", func(t *testing.T) {
		_, err := BuildRecords(ctx, nil, items, fixedNow)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}
