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
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/storage"
)

// CheckpointName is the processor type under which progress is saved.
const CheckpointName = "reembed"

// Option configures a Reembedder.
type Option func(*Reembedder) error

// WithBatchSize sets the number of records embedded per call.
func WithBatchSize(size int) Option {
	return func(r *Reembedder) error {
		if size <= 0 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		r.batchSize = size
		return nil
	}
}

// WithRetries sets the retry policy for embedder calls.
func WithRetries(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Reembedder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.backoff.MaxAttempts = maxAttempts
		r.backoff.BaseDelay = baseDelay
		return nil
	}
}

// WithNormalize toggles scaling of new vectors to unit length.
func WithNormalize(normalize bool) Option {
	return func(r *Reembedder) error {
		r.normalize = normalize
		return nil
	}
}

// WithProgress sets where the progress line is printed and how often.
func WithProgress(w io.Writer, every int) Option {
	return func(r *Reembedder) error {
		r.progress = w
		r.reportEvery = every
		return nil
	}
}

// WithCheckpoints makes runs resumable.
func WithCheckpoints(checkpoints storage.CheckpointRepository) Option {
	return func(r *Reembedder) error {
		r.checkpoints = checkpoints
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reembedder) error {
		r.logger = logger
		return nil
	}
}

// Reembedder recomputes the embeddings of every stored feedback record.
type Reembedder struct {
	repo        storage.FeedbackRepository
	embedder    ai.Embedder
	checkpoints storage.CheckpointRepository
	batchSize   int
	backoff     Backoff
	normalize   bool
	progress    io.Writer
	reportEvery int
	logger      *slog.Logger
}

// NewReembedder creates a new reembedder.
func NewReembedder(repo storage.FeedbackRepository, embedder ai.Embedder, opts ...Option) (*Reembedder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Reembedder{
		repo:      repo,
		embedder:  embedder,
		batchSize: DefaultBatchSize,
		backoff: Backoff{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    30 * time.Second,
		},
		normalize:   true,
		progress:    io.Discard,
		reportEvery: DefaultBatchSize,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "reembedder")
	return r, nil
}

// Run re-embeds the corpus and returns the number of records processed
// by this run. When checkpoints are configured, a run picks up after the
// last batch a previous run completed, and the checkpoint is removed once
// the corpus is done.
func (r *Reembedder) Run(ctx context.Context) (int, error) {
	total, err := r.repo.CountFeedback(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback records: %w", err)
	}
	if total == 0 {
		r.logger.Info("no feedback records to re-embed")
		return 0, nil
	}

	var after core.ID
	resumed := 0
	if r.checkpoints != nil {
		cp, err := r.checkpoints.LoadCheckpoint(ctx, CheckpointName)
		if err != nil {
			return 0, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if cp != nil {
			after, resumed = cp.LastID, cp.Processed
			r.logger.Info("resuming re-embedding", "after", after, "processed", resumed)
		}
	}

	r.logger.Info("re-embedding feedback corpus", "records", total, "batchSize", r.batchSize, "normalize", r.normalize)

	tracker := NewProgressTracker(r.progress, total, r.reportEvery)
	tracker.Start(resumed)

	processor := NewBatchProcessor(r.repo, r.embedder, r.backoff, r.normalize)
	iter := NewFeedbackIterator(r.repo, r.batchSize, after)
	processed := 0

	err = iter.ForEach(ctx, func(batch []*core.FeedbackRecord) error {
		if err := processor.Process(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		processed += len(batch)
		tracker.Add(len(batch))

		if r.checkpoints == nil {
			return nil
		}
		cp := &core.Checkpoint{
			ProcessorType: CheckpointName,
			LastID:        batch[len(batch)-1].ID(),
			Processed:     resumed + processed,
		}
		if err := r.checkpoints.SaveCheckpoint(ctx, cp); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}
		return nil
	})
	if err != nil {
		return processed, err
	}

	tracker.Finish()

	if r.checkpoints != nil {
		if err := r.checkpoints.DeleteCheckpoint(ctx, CheckpointName); err != nil {
			return processed, fmt.Errorf("failed to delete checkpoint: %w", err)
		}
	}

	r.logger.Info("re-embedding complete",
		"processed", processed,
		"elapsed", tracker.Elapsed().Round(time.Millisecond),
		"rate", fmt.Sprintf("%.1f records/s", tracker.Rate()))
	return processed, nil
}
