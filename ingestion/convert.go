package ingestion

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/poiesic/hemeroteca/core"
)

// ItemFromFeed converts a parsed feed entry into an Item.
//
// Categories and media:keywords are lowercased and comma-joined. The
// publication date is kept as published. Entries without a title, link
// or description are rejected with an error wrapping core.ErrInvalidItem.
func ItemFromFeed(channel string, entry *gofeed.Item) (core.Item, error) {
	if entry == nil {
		return core.Item{}, fmt.Errorf("%w: entry is nil", core.ErrInvalidItem)
	}

	item := core.Item{
		Channel:     channel,
		Title:       entry.Title,
		Link:        entry.Link,
		Description: entry.Description,
		Creators:    strings.Join(creators(entry), ","),
		PubDate:     entry.Published,
		Categories:  joinLower(entry.Categories),
		Keywords:    joinLower(mediaKeywords(entry)),
	}

	if err := core.ValidateItem(&item); err != nil {
		return core.Item{}, err
	}
	return item, nil
}

// creators prefers dc:creator and falls back to the entry authors.
func creators(entry *gofeed.Item) []string {
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return entry.DublinCoreExt.Creator
	}
	names := make([]string, 0, len(entry.Authors))
	for _, author := range entry.Authors {
		if author != nil && author.Name != "" {
			names = append(names, author.Name)
		}
	}
	return names
}

func mediaKeywords(entry *gofeed.Item) []string {
	media, ok := entry.Extensions["media"]
	if !ok {
		return nil
	}
	var keywords []string
	for _, ext := range media["keywords"] {
		if ext.Value != "" {
			keywords = append(keywords, ext.Value)
		}
	}
	return keywords
}

func joinLower(values []string) string {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		lowered = append(lowered, strings.ToLower(v))
	}
	return strings.Join(lowered, ",")
}
