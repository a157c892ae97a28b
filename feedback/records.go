package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/core"
)

// EmbedItem returns the title and bag-of-words embeddings of item in a
// single embedder call.
func EmbedItem(ctx context.Context, embedder ai.Embedder, item *core.Item) (title, bow []float32, err error) {
	texts := []string{item.Title}
	if words := item.BagOfWords(); words != "" {
		texts = append(texts, words)
	}
	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed item %q: %w", item.Link, err)
	}
	if len(vectors) != len(texts) {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrEmbeddingCount, len(vectors), len(texts))
	}
	if len(vectors) == 2 {
		bow = vectors[1]
	}
	return vectors[0], bow, nil
}

// BuildRecords embeds every rated item and stamps the records with
// ratedAt. Items carrying a pipeline error are skipped.
func BuildRecords(ctx context.Context, embedder ai.Embedder, items []core.Item, ratedAt time.Time) ([]core.FeedbackRecord, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	records := make([]core.FeedbackRecord, 0, len(items))
	for i := range items {
		if items[i].HasError() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		title, bow, err := EmbedItem(ctx, embedder, &items[i])
		if err != nil {
			return nil, err
		}
		if bow == nil {
			// Zero norm never passes the similarity threshold.
			bow = make([]float32, len(title))
		}
		record := core.FeedbackRecord{
			Item:           items[i],
			TitleEmbedding: title,
			BowEmbedding:   bow,
			FeedbackDate:   ratedAt,
		}
		if err := core.ValidateFeedbackRecord(&record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
