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


package vocab

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/strutil/metrics"
	"gopkg.in/yaml.v3"
)

// DefaultCoefficient is the minimum Sørensen–Dice coefficient for a word
// to count as relevant.
const DefaultCoefficient = 0.75

// Vocabulary is a read-only set of root words.
type Vocabulary struct {
	terms  []string
	metric *metrics.SorensenDice
}

// New returns the built-in bilingual roots merged with extra terms.
func New(extra ...string) *Vocabulary {
	terms := make([]string, 0, len(spanishRoots)+len(englishRoots)+len(extra))
	terms = append(terms, spanishRoots...)
	terms = append(terms, englishRoots...)
	terms = append(terms, extra...)
	return FromTerms(terms...)
}

// FromTerms returns a vocabulary holding exactly the given terms.
// Empty terms and duplicates are dropped.
func FromTerms(terms ...string) *Vocabulary {
	set := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		set = append(set, t)
	}
	slices.Sort(set)
	set = slices.Compact(set)

	return &Vocabulary{
		terms:  set,
		metric: &metrics.SorensenDice{CaseSensitive: true, NgramSize: 2},
	}
}

// Load reads a user word list and merges it into the built-in roots.
// An empty path yields the built-in vocabulary.
//
// Files ending in .yaml or .yml hold either a list of words or a mapping
// with a "words" list. Anything else is read as one word per line, with
// blank lines and lines starting with '#' ignored.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var words []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		words, err = parseYAML(data)
	case ".txt", "":
		words, err = parseLines(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}
	return New(words...), nil
}

func parseLines(data []byte) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func parseYAML(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var doc struct {
		Words []string `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Words, nil
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the terms in sorted order.
func (v *Vocabulary) Terms() []string {
	return slices.Clone(v.terms)
}

// IsRelevant reports whether word is close to any term at DefaultCoefficient.
func (v *Vocabulary) IsRelevant(word string) bool {
	return v.matches(word, DefaultCoefficient)
}

func (v *Vocabulary) matches(word string, coefficient float64) bool {
	for _, term := range v.terms {
		if v.metric.Compare(term, word) >= coefficient {
			return true
		}
	}
	return false
}

// IsRelevantWord reports whether word reaches coefficient against any
// term of vocabulary. It panics if coefficient is outside (0, 1].
func IsRelevantWord(word string, vocabulary *Vocabulary, coefficient float64) bool {
	if coefficient <= 0 || coefficient > 1 {
		panic(fmt.Sprintf("%v: got %v", ErrInvalidCoefficient, coefficient))
	}
	return vocabulary.matches(word, coefficient)
}
