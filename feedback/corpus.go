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


package feedback

import (
	"fmt"
	"slices"

	"github.com/poiesic/hemeroteca/core"
)

// Corpus is an immutable snapshot of rated items.
type Corpus struct {
	records []core.FeedbackRecord
	dims    int
}

// NewCorpus validates records and copies them into a corpus. Every
// embedding must share one dimensionality.
func NewCorpus(records []core.FeedbackRecord) (*Corpus, error) {
	c := &Corpus{records: make([]core.FeedbackRecord, 0, len(records))}
	for i := range records {
		r := records[i]
		if err := core.ValidateFeedbackRecord(&r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if c.dims == 0 {
			c.dims = len(r.TitleEmbedding)
		} else if len(r.TitleEmbedding) != c.dims {
			return nil, fmt.Errorf("%w: record %d has %d dimensions, corpus has %d",
				ErrDimensionMismatch, i, len(r.TitleEmbedding), c.dims)
		}
		r.TitleEmbedding = slices.Clone(r.TitleEmbedding)
		r.BowEmbedding = slices.Clone(r.BowEmbedding)
		c.records = append(c.records, r)
	}
	return c, nil
}

// NewCorpusFromRefs is NewCorpus for records held by pointer, as
// returned by storage. Nil entries are skipped.
func NewCorpusFromRefs(records []*core.FeedbackRecord) (*Corpus, error) {
	values := make([]core.FeedbackRecord, 0, len(records))
	for _, r := range records {
		if r != nil {
			values = append(values, *r)
		}
	}
	return NewCorpus(values)
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Dims returns the embedding dimensionality, or 0 for an empty corpus.
func (c *Corpus) Dims() int {
	return c.dims
}

// Records returns a copy of the records.
func (c *Corpus) Records() []core.FeedbackRecord {
	return slices.Clone(c.records)
}
