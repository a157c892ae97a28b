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


// Package hemeroteca wires storage, AI services and a shared worker pool
// into one handle for building feed ingestion and scoring pipelines.
package hemeroteca

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/ai/openai"
	"github.com/poiesic/hemeroteca/feedback"
	"github.com/poiesic/hemeroteca/ingestion"
	"github.com/poiesic/hemeroteca/reembed"
	"github.com/poiesic/hemeroteca/scoring"
	"github.com/poiesic/hemeroteca/storage"
	"github.com/poiesic/hemeroteca/storage/badger"
)

type Hemeroteca struct {
	backend     *badger.Backend
	items       storage.ItemRepository
	feedback    storage.FeedbackRepository
	checkpoints storage.CheckpointRepository
	provider    ai.AIProvider
	pool        *ants.Pool
	logger      *slog.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	poolSize int
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithProvider uses provider instead of building one from the AI config.
// The handle closes it on Close.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithPoolSize sets the shared worker pool size. Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(o *options) {
		o.poolSize = size
	}
}

// WithInMemory keeps the store in memory; the path is ignored.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open opens (or creates) the store at path and prepares the AI provider
// and the shared worker pool.
func Open(path string, opts ...Option) (*Hemeroteca, error) {
	o := &options{
		aiConfig: ai.DefaultConfig(),
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.poolSize < 1 {
		o.poolSize = 1
	}

	if o.inMemory {
		path = ""
	}
	backend, err := badger.OpenBackend(path, badger.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	provider := o.provider
	if provider == nil {
		provider, err = openai.NewProvider(o.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Hemeroteca{
		backend:     backend,
		items:       badger.NewItemRepository(backend),
		feedback:    badger.NewFeedbackRepository(backend),
		checkpoints: badger.NewCheckpointRepository(backend),
		provider:    provider,
		pool:        pool,
		logger:      o.logger.With("component", "hemeroteca"),
	}, nil
}

// Close releases the pool, the provider and the store.
func (h *Hemeroteca) Close() error {
	h.pool.Release()

	var errs []error
	if err := h.provider.Close(); err != nil {
		h.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if err := h.backend.Close(); err != nil {
		h.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (h *Hemeroteca) ItemRepository() storage.ItemRepository {
	return h.items
}

func (h *Hemeroteca) FeedbackRepository() storage.FeedbackRepository {
	return h.feedback
}

func (h *Hemeroteca) CheckpointRepository() storage.CheckpointRepository {
	return h.checkpoints
}

func (h *Hemeroteca) Provider() ai.AIProvider {
	return h.provider
}

// NewPipeline returns an ingestion pipeline running on the shared pool.
// Options may override the pool.
func (h *Hemeroteca) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(append([]ingestion.Option{ingestion.WithPool(h.pool)}, opts...)...)
}

// NewOrchestrator returns a scoring orchestrator running on the shared pool.
func (h *Hemeroteca) NewOrchestrator(opts ...scoring.Option) (*scoring.Orchestrator, error) {
	return scoring.NewOrchestrator(append([]scoring.Option{scoring.WithPool(h.pool)}, opts...)...)
}

// FeedbackCorpus loads every stored feedback record into a corpus.
func (h *Hemeroteca) FeedbackCorpus(ctx context.Context) (*feedback.Corpus, error) {
	records, err := h.feedback.ListFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback.NewCorpusFromRefs(records)
}

// NewReembedder returns a resumable reembedder over the stored corpus
// using the provider's embedder.
func (h *Hemeroteca) NewReembedder(opts ...reembed.Option) (*reembed.Reembedder, error) {
	base := []reembed.Option{reembed.WithCheckpoints(h.checkpoints), reembed.WithLogger(h.logger)}
	return reembed.NewReembedder(h.feedback, h.provider.Embedder(), append(base, opts...)...)
}
