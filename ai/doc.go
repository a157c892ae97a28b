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


// Package ai provides abstractions for the language model services used
// by hemeroteca.
//
// Two services are needed: an Embedder, which turns titles and bags of
// words into fixed-length vectors for feedback scoring, and a Summarizer,
// which condenses article bodies for the dossier. An AIProvider bundles
// both so they share configuration and lifecycle.
//
// # Implementation Packages
//
//   - ai/openai: langchaingo clients for any OpenAI-compatible endpoint
//   - ai/mock: test doubles with injectable behavior and call counters
//
// Public constructors in ai/openai return interfaces. Mock constructors
// return concrete types so tests can inspect call counts.
//
// # Circuit Breaking
//
// NewBreakerEmbedder wraps any Embedder so that a failing embedding
// service is not hammered by every scoring task of a batch: after a run
// of consecutive failures calls fail fast with ErrServiceUnavailable
// until the breaker half-opens again.
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("all-minilm"),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, []string{title, bow})
package ai
