package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerEmbedder is an Embedder guarded by a circuit breaker.
type BreakerEmbedder struct {
	next    Embedder
	breaker *gobreaker.CircuitBreaker[[][]float32]
}

// NewBreakerEmbedder wraps next so that failures consecutive failures
// open the circuit for timeout. Context cancellation does not count as
// a failure.
func NewBreakerEmbedder(next Embedder, failures uint32, timeout time.Duration) *BreakerEmbedder {
	logger := slog.Default().With("component", "embedding-breaker")
	settings := gobreaker.Settings{
		Name:        "embedder",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerEmbedder{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[][]float32](settings),
	}
}

// EmbedText generates a single embedding through the breaker.
func (b *BreakerEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := b.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates embeddings through the breaker.
func (b *BreakerEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := b.breaker.Execute(func() ([][]float32, error) {
		return b.next.EmbedTexts(ctx, texts)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return vectors, err
}

// State returns the breaker state name: "closed", "half-open" or "open".
func (b *BreakerEmbedder) State() string {
	return b.breaker.State().String()
}
