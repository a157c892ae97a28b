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


// Package relevance computes the lexical relevance of an item: weighted
// counts of vocabulary matches across its structured fields and body.
package relevance

import (
	"strings"
	"time"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/vocab"
)

// Component weights.
const (
	CreatorWeight     = 10
	CategoryWeight    = 5
	KeywordWeight     = 5
	TitleWeight       = 10
	DescriptionWeight = 1
	BodyWeight        = 1
)

// Score returns the lexical breakdown of item against v.
// Items carrying a pipeline error get an all-zero breakdown with
// Errored set.
func Score(item core.Item, v *vocab.Vocabulary) core.RelevanceBreakdown {
	start := time.Now()
	if item.HasError() {
		return core.RelevanceBreakdown{Errored: true, Elapsed: time.Since(start)}
	}

	b := scoreFields(&item, v)
	b.Body = scoreBody(&item, v)
	b.Elapsed = time.Since(start)
	return b
}

// Net is shorthand for Score(item, v).Net().
func Net(item core.Item, v *vocab.Vocabulary) uint64 {
	return Score(item, v).Net()
}

func scoreFields(item *core.Item, v *vocab.Vocabulary) core.RelevanceBreakdown {
	var b core.RelevanceBreakdown
	if item.Creators != "" {
		b.Creator = CreatorWeight
	}
	b.Categories = CategoryWeight * countSeparated(item.Categories, v)
	b.Keywords = KeywordWeight * countSeparated(item.Keywords, v)
	b.Title = TitleWeight * countWords(item.Title, v)
	b.Description = DescriptionWeight * countWords(item.Description, v)
	return b
}

func scoreBody(item *core.Item, v *vocab.Vocabulary) uint64 {
	if item.CleanContent == "" {
		return 0
	}
	return BodyWeight * countWords(item.CleanContent, v)
}

// countSeparated counts relevant comma-separated tokens. Tokens are not
// trimmed; an absent field counts nothing.
func countSeparated(field string, v *vocab.Vocabulary) uint64 {
	if field == "" {
		return 0
	}
	var n uint64
	for _, token := range strings.Split(field, ",") {
		if v.IsRelevant(token) {
			n++
		}
	}
	return n
}

func countWords(text string, v *vocab.Vocabulary) uint64 {
	var n uint64
	for _, word := range strings.Fields(text) {
		if v.IsRelevant(word) {
			n++
		}
	}
	return n
}
