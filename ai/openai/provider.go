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


package openai

import (
	"log/slog"

	"github.com/poiesic/hemeroteca/ai"
)

// Provider serves the embedder and the summarizer from one ai.Config.
// Both talk to OpenAI-compatible endpoints, possibly on different hosts.
type Provider struct {
	raw        *Embedder
	embedder   ai.Embedder
	summarizer *Summarizer
	logger     *slog.Logger
}

var _ ai.AIProvider = (*Provider)(nil)

// NewProvider validates config and builds both services. A positive
// BreakerFailures puts the embedder behind a circuit breaker.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	raw, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}
	summarizer, err := newSummarizer(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		raw:        raw,
		embedder:   raw,
		summarizer: summarizer,
		logger: slog.Default().With("component", "openai-provider",
			"embedding_host", config.EmbeddingHost, "summary_host", config.SummaryHost),
	}
	if config.BreakerFailures > 0 {
		p.embedder = ai.NewBreakerEmbedder(raw, config.BreakerFailures, config.BreakerTimeout)
	}
	p.logger.Debug("provider ready", "breaker", config.BreakerFailures > 0)
	return p, nil
}

func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

func (p *Provider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// Dims is the embedding dimensionality observed so far.
func (p *Provider) Dims() int {
	return p.raw.Dims()
}

// Close is a no-op: the HTTP clients hold no resources of their own.
func (p *Provider) Close() error {
	p.logger.Debug("provider closed", "dims", p.raw.Dims())
	return nil
}
