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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/feedback"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HEMEROTECA_"

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var sections = []string{"filter", "scoring", "fetch", "database", "ai", "reembed"}

// sliceKeys are split on commas when they arrive as a single string.
var sliceKeys = []string{"filter.opt_in"}

// LoadDotEnv loads environment variables from the given .env files
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitSlices(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps HEMEROTECA_AI_API_KEY to ai.api_key and
// HEMEROTECA_LOG_LEVEL to log_level.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

func splitSlices(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(key, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks struct constraints and the cross-field rules the tags
// cannot express. Opt-in terms are lowercased.
func (c *Config) Validate() error {
	if err := core.Validator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			bad := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				bad = append(bad, fe.Namespace())
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(bad, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := core.ParseOperator(c.Filter.Operator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, ok := feedback.ParseCompareMode(c.Scoring.CompareMode); !ok {
		return fmt.Errorf("%w: unknown compare mode %q", ErrInvalidConfig, c.Scoring.CompareMode)
	}
	if c.AI.BreakerFailures > 0 && c.AI.BreakerTimeout <= 0 {
		return fmt.Errorf("%w: ai.breaker_timeout must be positive when the breaker is enabled", ErrInvalidConfig)
	}

	for i, term := range c.Filter.OptIn {
		c.Filter.OptIn[i] = strings.ToLower(strings.TrimSpace(term))
	}
	return nil
}

// Operator returns the parsed opt-in operator.
func (c *Config) Operator() core.Operator {
	op, _ := core.ParseOperator(c.Filter.Operator)
	return op
}

// CompareMode returns the parsed feedback comparison mode.
func (c *Config) CompareMode() feedback.CompareMode {
	mode, _ := feedback.ParseCompareMode(c.Scoring.CompareMode)
	return mode
}
