package reembed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/ai/mock"
	"github.com/poiesic/hemeroteca/core"
)

func TestBatchProcessor_EmptyBagOfWords(t *testing.T) {
	ctx := context.Background()
	repo, _ := seedFeedback(t, 1)

	bare := &core.FeedbackRecord{
		Item:           core.Item{Title: "Sin etiquetas", Link: "https://example.com/bare", Description: "d"}.WithRelevance(3),
		TitleEmbedding: []float32{1, 0},
		BowEmbedding:   []float32{0, 1},
		FeedbackDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.PutFeedback(ctx, bare))

	records, err := repo.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	embedder := mock.NewMockEmbedder()
	embedder.Dimensions = 4
	bp := NewBatchProcessor(repo, embedder, Backoff{MaxAttempts: 1}, false)
	require.NoError(t, bp.Process(ctx, records))

	assert.NotContains(t, embedder.Texts(), "")
	assert.Len(t, embedder.Texts(), 3)

	stored, err := repo.GetFeedback(ctx, bare.ID())
	require.NoError(t, err)
	assert.Equal(t, mock.DeterministicVector("Sin etiquetas", 4), stored.TitleEmbedding)
	assert.Equal(t, make([]float32, 4), stored.BowEmbedding)
}
