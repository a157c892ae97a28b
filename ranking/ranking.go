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


// Package ranking orders scored items and selects the best of them.
package ranking

import (
	"cmp"
	"slices"

	"github.com/poiesic/hemeroteca/core"
)

// Compare orders items by relevance, descending. An absent relevance
// sorts after every present one and two absent values are equal.
func Compare(a, b core.Item) int {
	switch {
	case a.Relevance == nil && b.Relevance == nil:
		return 0
	case a.Relevance == nil:
		return 1
	case b.Relevance == nil:
		return -1
	}
	return cmp.Compare(*b.Relevance, *a.Relevance)
}

// Sort returns a copy of items ordered by Compare. Ties keep their input order.
func Sort(items []core.Item) []core.Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, Compare)
	return sorted
}

// TopK returns at most k items in descending relevance. The input is
// not modified. A k larger than the input returns every item; a k below
// one returns none.
func TopK(items []core.Item, k int) []core.Item {
	sorted := Sort(items)
	if k < 0 {
		k = 0
	}
	if k < len(sorted) {
		sorted = sorted[:k:k]
	}
	return sorted
}
