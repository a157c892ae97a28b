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


package config

import (
	"time"

	"github.com/poiesic/hemeroteca/ai"
	"github.com/poiesic/hemeroteca/feedback"
)

// Config is the complete runtime configuration.
type Config struct {
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`
	FeedsFile   string `koanf:"feeds_file" validate:"required"`
	Root        string `koanf:"root" validate:"required"`
	Threads     int    `koanf:"threads" validate:"gte=0"` // 0 means one worker per CPU
	Vocabulary  string `koanf:"vocabulary"`               // Extra vocabulary YAML, optional
	MetricsFile string `koanf:"metrics_file"`

	Filter   FilterConfig   `koanf:"filter"`
	Scoring  ScoringConfig  `koanf:"scoring"`
	Fetch    FetchConfig    `koanf:"fetch"`
	Database DatabaseConfig `koanf:"database"`
	AI       AIConfig       `koanf:"ai"`
	Reembed  ReembedConfig  `koanf:"reembed"`
}

// FilterConfig selects the opt-in terms applied after fetching.
type FilterConfig struct {
	OptIn    []string `koanf:"opt_in"`
	Operator string   `koanf:"operator" validate:"oneof=and or"`
}

// ScoringConfig tunes the scoring stages.
type ScoringConfig struct {
	TopK             int     `koanf:"top_k" validate:"gte=1"`
	DossierSize      int     `koanf:"dossier_size" validate:"gte=1"`
	FailureTolerance int     `koanf:"failure_tolerance" validate:"gte=0"`
	MaxInFlight      int64   `koanf:"max_in_flight" validate:"gte=0"`
	Threshold        float64 `koanf:"threshold" validate:"gte=0,lte=1"`
	CompareMode      string  `koanf:"compare_mode" validate:"oneof=title matched"`
}

// FetchConfig controls outbound HTTP.
type FetchConfig struct {
	RateLimit float64       `koanf:"rate_limit" validate:"gte=0"` // Requests per second, 0 disables
	Burst     int           `koanf:"burst" validate:"gte=0"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`
	UserAgent string        `koanf:"user_agent" validate:"required"`
}

// DatabaseConfig locates the Badger store.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// AIConfig mirrors ai.Config.
type AIConfig struct {
	EmbeddingHost    string        `koanf:"embedding_host" validate:"required,url"`
	SummaryHost      string        `koanf:"summary_host" validate:"required,url"`
	EmbeddingModel   string        `koanf:"embedding_model" validate:"required"`
	SummaryModel     string        `koanf:"summary_model" validate:"required"`
	APIKey           string        `koanf:"api_key"`
	SummaryMaxTokens int           `koanf:"summary_max_tokens" validate:"gte=1"`
	BreakerFailures  uint32        `koanf:"breaker_failures"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout"`
}

// ReembedConfig tunes corpus re-embedding.
type ReembedConfig struct {
	BatchSize  int           `koanf:"batch_size" validate:"gte=1"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=1"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gte=0"`
	Normalize  bool          `koanf:"normalize"`
}

// Default returns the built-in configuration.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		LogLevel:  "info",
		FeedsFile: "feeds.txt",
		Root:      "reports",
		Filter: FilterConfig{
			Operator: "or",
		},
		Scoring: ScoringConfig{
			TopK:        100,
			DossierSize: 20,
			Threshold:   feedback.DefaultThreshold,
			CompareMode: feedback.CompareTitleOnly.String(),
		},
		Fetch: FetchConfig{
			RateLimit: 0,
			Burst:     1,
			Timeout:   30 * time.Second,
			UserAgent: "hemeroteca/1.0",
		},
		AI: AIConfig{
			EmbeddingHost:    aiDefaults.EmbeddingHost,
			SummaryHost:      aiDefaults.SummaryHost,
			EmbeddingModel:   aiDefaults.EmbeddingModel,
			SummaryModel:     aiDefaults.SummaryModel,
			APIKey:           aiDefaults.APIKey,
			SummaryMaxTokens: aiDefaults.SummaryMaxTokens,
			BreakerFailures:  aiDefaults.BreakerFailures,
			BreakerTimeout:   aiDefaults.BreakerTimeout,
		},
		Reembed: ReembedConfig{
			BatchSize:  64,
			MaxRetries: 3,
			RetryDelay: time.Second,
			Normalize:  true,
		},
	}
}

// ToAI converts the AI section into an ai.Config.
func (c *Config) ToAI() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithSummaryHost(c.AI.SummaryHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithSummaryModel(c.AI.SummaryModel),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithSummaryMaxTokens(c.AI.SummaryMaxTokens),
		ai.WithBreaker(c.AI.BreakerFailures, c.AI.BreakerTimeout),
	)
}
