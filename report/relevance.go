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


package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/ranking"
)

// ChannelStats aggregates the relevance of one channel's items.
type ChannelStats struct {
	Channel string
	Items   int
	Total   float64
}

// Average returns Total / Items.
func (s ChannelStats) Average() float64 {
	if s.Items == 0 {
		return 0
	}
	return s.Total / float64(s.Items)
}

// Channels returns per-channel statistics ordered by average relevance,
// descending. Channels with equal averages are ordered by name.
// Unscored items count with zero relevance.
func Channels(items []core.Item) []ChannelStats {
	index := make(map[string]int)
	var stats []ChannelStats
	for i := range items {
		pos, ok := index[items[i].Channel]
		if !ok {
			pos = len(stats)
			index[items[i].Channel] = pos
			stats = append(stats, ChannelStats{Channel: items[i].Channel})
		}
		stats[pos].Items++
		stats[pos].Total += items[i].RelevanceOrZero()
	}
	slices.SortFunc(stats, func(a, b ChannelStats) int {
		if c := cmp.Compare(b.Average(), a.Average()); c != 0 {
			return c
		}
		return strings.Compare(a.Channel, b.Channel)
	})
	return stats
}

// Relevance renders the relevance report: per-channel statistics
// followed by every item in descending relevance.
func Relevance(items []core.Item) string {
	var b strings.Builder

	b.WriteString("# Relevance Report\n\n")

	b.WriteString("## Relevance per Channel\n\n")
	for _, s := range Channels(items) {
		fmt.Fprintf(&b, "- **%s:** Items: %d Total: %s Average: %s\n",
			s.Channel, s.Items, number(s.Total), number(s.Average()))
	}
	b.WriteString("\n")

	b.WriteString("## Relevance list\n")
	for i, item := range ranking.Sort(items) {
		fmt.Fprintf(&b, "%d. (%s) [%s] %s\n", i+1, number(item.RelevanceOrZero()), item.Channel, item.Title)
	}

	return b.String()
}
