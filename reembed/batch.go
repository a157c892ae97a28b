// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"fmt"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/storage"
)

// BatchProcessor recomputes embeddings for batches of feedback records.
type BatchProcessor struct {
	repo      storage.FeedbackRepository
	embedder  ai.Embedder
	backoff   Backoff
	normalize bool
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(repo storage.FeedbackRepository, embedder ai.Embedder, backoff Backoff, normalize bool) *BatchProcessor {
	return &BatchProcessor{
		repo:      repo,
		embedder:  embedder,
		backoff:   backoff,
		normalize: normalize,
	}
}

// Process embeds the title and bag of words of every record in a single
// embedder call and stores the new vectors.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.FeedbackRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Titles first, then the non-empty bags of words.
	n := len(records)
	texts := make([]string, n, 2*n)
	bowAt := make([]int, n)
	for i, record := range records {
		texts[i] = record.Item.Title
		bowAt[i] = -1
		if words := record.Item.BagOfWords(); words != "" {
			bowAt[i] = len(texts)
			texts = append(texts, words)
		}
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.backoff)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.backoff.MaxAttempts, err)
	}

	if len(embeddings) != len(texts) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCount, len(texts), len(embeddings))
	}

	for i, record := range records {
		title := embeddings[i]
		bow := make([]float32, len(title))
		if bowAt[i] >= 0 {
			bow = embeddings[bowAt[i]]
		}
		if bp.normalize {
			title, bow = NormalizeVector(title), NormalizeVector(bow)
		}
		if err := bp.repo.UpdateEmbeddings(ctx, record.ID(), title, bow); err != nil {
			return fmt.Errorf("failed to update record %s: %w", record.Item.Link, err)
		}
		record.TitleEmbedding, record.BowEmbedding = title, bow
	}

	return nil
}
