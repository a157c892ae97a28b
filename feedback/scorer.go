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
	"log/slog"
	"time"

	"github.com/poiesic/hemeroteca/core"
)

// CompareMode selects which stored embedding each query is compared to.
type CompareMode int

const (
	// CompareTitleOnly compares both queries to stored title embeddings.
	CompareTitleOnly CompareMode = iota
	// CompareMatched compares title to title and bag of words to bag of words.
	CompareMatched
)

// String returns the configuration name of the mode.
func (m CompareMode) String() string {
	if m == CompareMatched {
		return "matched"
	}
	return "title"
}

// ParseCompareMode parses "title" or "matched".
func ParseCompareMode(s string) (CompareMode, bool) {
	switch s {
	case "", "title":
		return CompareTitleOnly, true
	case "matched":
		return CompareMatched, true
	}
	return CompareTitleOnly, false
}

// Scorer estimates relevance against a corpus. It is safe for concurrent use.
type Scorer struct {
	corpus    *Corpus
	threshold float64
	mode      CompareMode
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithThreshold sets the similarity a record must strictly exceed.
// Default is DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(s *Scorer) error {
		s.threshold = threshold
		return nil
	}
}

// WithCompareMode sets the comparison mode. Default is CompareTitleOnly.
func WithCompareMode(mode CompareMode) Option {
	return func(s *Scorer) error {
		s.mode = mode
		return nil
	}
}

// WithClock sets the time source used for decay.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a scorer over corpus. A nil corpus behaves as empty.
func NewScorer(corpus *Corpus, opts ...Option) (*Scorer, error) {
	if corpus == nil {
		corpus = &Corpus{}
	}
	s := &Scorer{
		corpus:    corpus,
		threshold: DefaultThreshold,
		mode:      CompareTitleOnly,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "feedback")
	return s, nil
}

// Corpus returns the corpus the scorer reads.
func (s *Scorer) Corpus() *Corpus {
	return s.corpus
}

// Score returns the feedback-estimated relevance of item given the
// embeddings of its title and bag of words. The result is finite and
// non-negative. It panics if an embedding does not match the corpus
// dimensionality.
func (s *Scorer) Score(item core.Item, titleEmbedding, bowEmbedding []float32) float64 {
	titleRelevance := s.average(titleEmbedding, titleOf)
	bowSelector := titleOf
	if s.mode == CompareMatched {
		bowSelector = bowOf
	}
	bowRelevance := s.average(bowEmbedding, bowSelector)

	relevance := max(titleRelevance, bowRelevance)
	if published, ok := core.ParsePubDate(item.PubDate); ok {
		days := DaysBetween(published, s.now())
		relevance *= DecayMultiplier(days)
	} else if item.PubDate != "" {
		s.logger.Debug("unparseable publication date, no decay applied", "link", item.Link, "pubDate", item.PubDate)
	}
	return sanitize(relevance)
}

func titleOf(r *core.FeedbackRecord) []float32 { return r.TitleEmbedding }
func bowOf(r *core.FeedbackRecord) []float32   { return r.BowEmbedding }

// average returns the mean known relevance of the records whose selected
// embedding is more similar to query than the threshold, or 0 if none is.
func (s *Scorer) average(query []float32, selector func(*core.FeedbackRecord) []float32) float64 {
	if len(query) == 0 {
		return 0
	}
	var sum float64
	var n int
	for i := range s.corpus.records {
		record := &s.corpus.records[i]
		if CosineSimilarity(query, selector(record)) > s.threshold {
			sum += record.KnownRelevance()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sanitize(sum / float64(n))
}

// Score is a one-shot form of (*Scorer).Score comparing both queries to
// stored title embeddings with the current time. records are not
// validated; mismatched dimensions panic.
func Score(item core.Item, titleEmbedding, bowEmbedding []float32, records []core.FeedbackRecord, threshold float64) float64 {
	s := &Scorer{
		corpus:    &Corpus{records: records},
		threshold: threshold,
		now:       time.Now,
		logger:    slog.Default(),
	}
	return s.Score(item, titleEmbedding, bowEmbedding)
}
