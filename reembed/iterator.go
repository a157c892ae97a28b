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

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/storage"
)

const (
	// DefaultBatchSize is the default number of records to fetch in each batch
	DefaultBatchSize = 64
)

// FeedbackIterator pages through the feedback corpus in ID order.
type FeedbackIterator struct {
	repo      storage.FeedbackRepository
	batchSize int
	after     core.ID
}

// NewFeedbackIterator creates an iterator that yields records with an
// ID greater than after. A zero after starts at the first record.
func NewFeedbackIterator(repo storage.FeedbackRepository, batchSize int, after core.ID) *FeedbackIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &FeedbackIterator{
		repo:      repo,
		batchSize: batchSize,
		after:     after,
	}
}

// Last returns the ID of the last record handed to fn.
func (it *FeedbackIterator) Last() core.ID {
	return it.after
}

// ForEach calls fn with consecutive batches until the corpus is
// exhausted or fn fails. Only one batch is held in memory at a time.
func (it *FeedbackIterator) ForEach(ctx context.Context, fn func([]*core.FeedbackRecord) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := it.repo.ListFeedbackAfter(ctx, it.after, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}
		it.after = batch[len(batch)-1].ID()

		if len(batch) < it.batchSize {
			return nil
		}
	}
}
