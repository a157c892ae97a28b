package scoring

import (
	"context"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
	"github.com/poiesic/hemeroteca/relevance"
	"github.com/poiesic/hemeroteca/vocab"
)

// Scorer computes the relevance of one item and returns the scored copy.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, item core.Item) (core.Item, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, item core.Item) (core.Item, error)

// Score calls f(ctx, item).
func (f ScorerFunc) Score(ctx context.Context, item core.Item) (core.Item, error) {
	return f(ctx, item)
}

// LexicalScorer scores items by vocabulary matches. The relevance is the
// net of the breakdown, which is attached to the item.
type LexicalScorer struct {
	vocabulary *vocab.Vocabulary
}

// NewLexicalScorer creates a lexical scorer over v.
func NewLexicalScorer(v *vocab.Vocabulary) (*LexicalScorer, error) {
	if v == nil {
		return nil, ErrVocabularyRequired
	}
	return &LexicalScorer{vocabulary: v}, nil
}

// Score never fails.
func (s *LexicalScorer) Score(_ context.Context, item core.Item) (core.Item, error) {
	b := relevance.Score(item, s.vocabulary)
	item.Breakdown = &b
	return item.WithRelevance(float64(b.Net())), nil
}

// CompositeScorer attaches the lexical breakdown and sets the relevance
// to the feedback estimate. Items carrying a pipeline error score zero
// without contacting the embedder.
type CompositeScorer struct {
	vocabulary *vocab.Vocabulary
	embedder   ai.Embedder
	feedback   *feedback.Scorer
}

// NewCompositeScorer creates a composite scorer.
func NewCompositeScorer(v *vocab.Vocabulary, embedder ai.Embedder, fb *feedback.Scorer) (*CompositeScorer, error) {
	switch {
	case v == nil:
		return nil, ErrVocabularyRequired
	case embedder == nil:
		return nil, ErrEmbedderRequired
	case fb == nil:
		return nil, ErrFeedbackScorerRequired
	}
	return &CompositeScorer{vocabulary: v, embedder: embedder, feedback: fb}, nil
}

// Score fails only when the embedder does.
func (s *CompositeScorer) Score(ctx context.Context, item core.Item) (core.Item, error) {
	b := relevance.Score(item, s.vocabulary)
	item.Breakdown = &b
	if item.HasError() {
		return item.WithRelevance(0), nil
	}

	title, bow, err := feedback.EmbedItem(ctx, s.embedder, &item)
	if err != nil {
		return item, err
	}
	return item.WithRelevance(s.feedback.Score(item, title, bow)), nil
}
