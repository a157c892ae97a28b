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


package core

import (
	"encoding/binary"
	"slices"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Items and feedback records derive it from their link.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Item is a single entry read from a feed.
// It is enriched with clean content and a relevance score as it moves
// through the pipeline, and is never mutated once handed to reporting.
type Item struct {
	Channel      string              `json:"channel"`
	Title        string              `json:"title" validate:"required"`
	Link         string              `json:"link" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	Creators     string              `json:"creators,omitempty"`      // Comma-joined creator names
	PubDate      string              `json:"pub_date,omitempty"`      // RFC 2822 text as published, empty if absent
	Categories   string              `json:"categories,omitempty"`    // Comma-joined lowercase categories, empty if absent
	Keywords     string              `json:"keywords,omitempty"`      // Comma-joined lowercase keywords, empty if absent
	CleanContent string              `json:"clean_content,omitempty"` // Plain text body, empty until cleaned
	Summary      string              `json:"summary,omitempty"`       // Optional model-generated summary
	Error        *PipelineError      `json:"error,omitempty"`         // Terminal pipeline error, if any
	Relevance    *float64            `json:"relevance,omitempty"`     // Absent until scored
	Breakdown    *RelevanceBreakdown `json:"breakdown,omitempty"`
}

// ID returns the content-derived identifier of the item (its link).
func (i *Item) ID() ID {
	return IDFromContent(i.Link)
}

// HasError reports whether a terminal pipeline error was recorded.
func (i *Item) HasError() bool {
	return i.Error != nil
}

// RelevanceOrZero returns the relevance or 0 when the item is unscored.
func (i *Item) RelevanceOrZero() float64 {
	if i.Relevance == nil {
		return 0
	}
	return *i.Relevance
}

// WithRelevance returns a copy of the item carrying the given relevance.
func (i Item) WithRelevance(relevance float64) Item {
	i.Relevance = &relevance
	return i
}

// BagOfWords returns the deduplicated, lowercased union of keyword and
// category tokens joined by a single space.
// Token order is not significant; it is sorted to keep output stable.
func (i *Item) BagOfWords() string {
	set := make(map[string]struct{})
	for _, field := range []string{i.Keywords, i.Categories} {
		if field == "" {
			continue
		}
		for _, token := range strings.Split(field, ",") {
			if token == "" {
				continue
			}
			set[strings.ToLower(token)] = struct{}{}
		}
	}
	words := make([]string, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	slices.Sort(words)
	return strings.Join(words, " ")
}

// FeedbackRecord pairs a rated item with the embeddings of its title and
// of its bag of words. Records are immutable once built.
type FeedbackRecord struct {
	Item           Item      `json:"item"`
	TitleEmbedding []float32 `json:"title_embedding"`
	BowEmbedding   []float32 `json:"bow_embedding"`
	FeedbackDate   time.Time `json:"feedback_date"` // When the rating was given
}

// ID returns the identifier of the rated item.
func (r *FeedbackRecord) ID() ID {
	return r.Item.ID()
}

// KnownRelevance returns the rating carried by the record (0 if absent).
func (r *FeedbackRecord) KnownRelevance() float64 {
	return r.Item.RelevanceOrZero()
}

// Operator combines opt-in terms.
type Operator int

const (
	// OperatorOr keeps items matching at least one term.
	OperatorOr Operator = iota
	// OperatorAnd keeps items matching every term.
	OperatorAnd
)

// String returns the lowercase operator name.
func (o Operator) String() string {
	if o == OperatorAnd {
		return "and"
	}
	return "or"
}

// ParseOperator parses "and" or "or", ignoring case.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and":
		return OperatorAnd, nil
	case "or":
		return OperatorOr, nil
	}
	return OperatorOr, ErrInvalidOperator
}

// FeedbackRecordRefs returns pointers to the elements of records.
func FeedbackRecordRefs(records []FeedbackRecord) []*FeedbackRecord {
	refs := make([]*FeedbackRecord, len(records))
	for i := range records {
		refs[i] = &records[i]
	}
	return refs
}
