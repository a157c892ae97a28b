package ingestion

import (
	"testing"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
)

func TestItemFromFeed(t *testing.T) {
	entry := &gofeed.Item{
		Title:       "El Presidente habla",
		Link:        "https://example.com/a1",
		Description: "Resumen",
		Published:   "Mon, 02 Jan 2006 15:04:05 +0000",
		Categories:  []string{"Política", "ESPAÑA"},
		Authors:     []*gofeed.Person{{Name: "Author"}},
		DublinCoreExt: &ext.DublinCoreExtension{
			Creator: []string{"Ana", "Luis"},
		},
		Extensions: ext.Extensions{
			"media": {
				"keywords": []ext.Extension{{Name: "keywords", Value: "Gobierno, Crisis"}},
			},
		},
	}

	got, err := ItemFromFeed("EL PAÍS", entry)
	require.NoError(t, err)

	assert.Equal(t, "EL PAÍS", got.Channel)
	assert.Equal(t, "El Presidente habla", got.Title)
	assert.Equal(t, "https://example.com/a1", got.Link)
	assert.Equal(t, "Resumen", got.Description)
	assert.Equal(t, "Ana,Luis", got.Creators)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 +0000", got.PubDate)
	assert.Equal(t, "política,españa", got.Categories)
	assert.Equal(t, "gobierno, crisis", got.Keywords)
	assert.Nil(t, got.Relevance)
	assert.Nil(t, got.Error)
}

func TestItemFromFeed_Optional(t *testing.T) {
	entry := &gofeed.Item{
		Title:       "t",
		Link:        "l",
		Description: "d",
		Authors:     []*gofeed.Person{{Name: "A"}, nil, {Name: ""}, {Name: "B"}},
	}

	got, err := ItemFromFeed("c", entry)
	require.NoError(t, err)

	assert.Equal(t, "A,B", got.Creators)
	assert.Empty(t, got.Categories)
	assert.Empty(t, got.Keywords)
	assert.Empty(t, got.PubDate)
}

func TestItemFromFeed_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		entry *gofeed.Item
	}{
		{"nil entry", nil},
		{"missing title", &gofeed.Item{Link: "l", Description: "d"}},
		{"missing link", &gofeed.Item{Title: "t", Description: "d"}},
		{"missing description", &gofeed.Item{Title: "t", Link: "l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ItemFromFeed("c", tt.entry)
			assert.ErrorIs(t, err, core.ErrInvalidItem)
		})
	}
}
