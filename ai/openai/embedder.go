package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder turns titles and bags of words into vectors through an
// OpenAI-compatible /embeddings endpoint.
//
// An empty vector is an error. The first vector fixes the dimensionality for the lifetime
// of the Embedder; a later vector of another length fails with
// ai.ErrDimensionMismatch instead of reaching cosine similarity.
type Embedder struct {
	docs   embeddings.Embedder
	dims   atomic.Int64
	logger *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	// Titles and bags of words are short; newlines only add noise.
	docs, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &Embedder{
		docs:   docs,
		logger: slog.Default().With("component", "openai-embedder", "model", config.EmbeddingModel),
	}, nil
}

// NewEmbedder returns a standalone embedder for config.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Dims reports the dimensionality seen so far, or 0 before the first call.
func (e *Embedder) Dims() int {
	return int(e.dims.Load())
}

func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedding service returned %d vectors for 1 text", len(vectors))
	}
	return vectors[0], nil
}

// EmbedTexts embeds texts in one request; vectors come back in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := e.docs.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("embedding request failed", "texts", len(texts), "err", err)
		return nil, fmt.Errorf("failed to embed %d texts: %w", len(texts), err)
	}
	for _, v := range vectors {
		if err := e.checkDims(len(v)); err != nil {
			return nil, err
		}
	}
	e.logger.Debug("embedded texts", "texts", len(texts), "dims", e.Dims())
	return vectors, nil
}

func (e *Embedder) checkDims(n int) error {
	if n == 0 {
		return ai.ErrEmptyEmbedding
	}
	if e.dims.CompareAndSwap(0, int64(n)) {
		return nil
	}
	if want := e.dims.Load(); want != int64(n) {
		return fmt.Errorf("%w: got %d, expected %d", ai.ErrDimensionMismatch, n, want)
	}
	return nil
}
