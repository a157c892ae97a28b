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
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/ranking"
)

// Meta identifies one dossier run.
type Meta struct {
	RunID uuid.UUID
	Date  time.Time
}

// NewMeta returns metadata for a run starting at now with a fresh run ID.
func NewMeta(now time.Time) Meta {
	return Meta{RunID: uuid.New(), Date: now}
}

// Dossier renders items in the given order: a numbered table of
// contents, run metadata, then one section per item.
func Dossier(items []core.Item, meta Meta) string {
	var b strings.Builder

	b.WriteString("# Dossier\n\n")

	b.WriteString("## Table of Contents\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, item.Title, Anchor(item.Title))
	}
	b.WriteString("\n")

	b.WriteString("## Metadata\n")
	fmt.Fprintf(&b, "- **Number of items:** %d\n", len(items))
	fmt.Fprintf(&b, "- **Date:** %s\n", meta.Date.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Run:** %s\n", meta.RunID)
	b.WriteString("\n")

	b.WriteString("## News Items\n")
	for i := range items {
		item := &items[i]
		b.WriteString("---\n")
		fmt.Fprintf(&b, "### %s\n\n", item.Title)

		b.WriteString("#### Data\n")
		writeData(&b, item)
		b.WriteString("\n")

		if item.Summary != "" {
			fmt.Fprintf(&b, "#### Summary\n%s\n\n", item.Summary)
		}

		if item.CleanContent != "" {
			fmt.Fprintf(&b, "#### Clean Content\n%s\n", item.CleanContent)
		} else {
			b.WriteString("#### Clean Content N/A\n")
		}
	}

	return b.String()
}

// ItemsLog renders the intermediate items of a dossier run in
// descending relevance, with the first characters of each description.
func ItemsLog(items []core.Item) string {
	const descriptionChars = 50

	var b strings.Builder
	sorted := ranking.Sort(items)

	b.WriteString("# Table of Contents\n")
	for i, item := range sorted {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, item.Title, Anchor(item.Title))
	}
	b.WriteString("\n")

	for i := range sorted {
		item := &sorted[i]
		b.WriteString("---\n")
		fmt.Fprintf(&b, "# %s\n", item.Title)
		b.WriteString("## Data\n")
		writeData(&b, item)
		fmt.Fprintf(&b, "## Description\n%s\n", truncate(item.Description, descriptionChars))
		if item.CleanContent != "" {
			fmt.Fprintf(&b, "## Clean Content\n%s\n", item.CleanContent)
		} else {
			b.WriteString("## Clean Content N/A\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeData(b *strings.Builder, item *core.Item) {
	fmt.Fprintf(b, "- **Channel:** %s\n", item.Channel)
	fmt.Fprintf(b, "- **Relevance:** %s\n", number(item.RelevanceOrZero()))
	if item.Breakdown != nil {
		fmt.Fprintf(b, "- **Breakdown:** %s\n", item.Breakdown)
	}
	fmt.Fprintf(b, "- **Link:** %s\n", item.Link)
	fmt.Fprintf(b, "- **Publish Date:** %s\n", orNA(item.PubDate))
	fmt.Fprintf(b, "- **Categories:** %s\n", orNA(item.Categories))
	fmt.Fprintf(b, "- **Keywords:** %s\n", orNA(item.Keywords))
	errText := "none"
	if item.Error != nil {
		errText = item.Error.String()
	}
	fmt.Fprintf(b, "- **Error:** %s\n", errText)
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
