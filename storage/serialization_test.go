package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("https://example.com/a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.Len(t, data, 8)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestMarshalID_SortsByID(t *testing.T) {
	assert.Less(t, string(MarshalID(1)), string(MarshalID(256)))
	assert.Less(t, string(MarshalID(255)), string(MarshalID(1<<40)))
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{1, 2})
	assert.ErrorIs(t, err, ErrShortValue)

	_, err = UnmarshalItem(nil)
	assert.ErrorIs(t, err, ErrShortValue)

	_, err = UnmarshalFeedbackRecord([]byte("{not json"))
	assert.ErrorIs(t, err, ErrCodec)

	_, err = UnmarshalItem([]byte(`{"title":"t","error":"Bogus(x)"}`))
	assert.ErrorIs(t, err, ErrCodec)
}

func TestItemEncoding_PipelineErrorAsText(t *testing.T) {
	item := core.Item{Title: "t", Link: "l", Description: "d", Error: core.NewParseFailure("bad gzip")}

	data, err := MarshalItem(&item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"ParseFailure(bad gzip)"`)
	assert.NotContains(t, string(data), `"relevance"`)

	decoded, err := UnmarshalItem(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.Error)
	assert.Equal(t, *item.Error, *decoded.Error)
	assert.Nil(t, decoded.Relevance)
}

func TestFeedbackRecordEncoding(t *testing.T) {
	record := &core.FeedbackRecord{
		Item:           core.Item{Title: "t", Link: "l", Description: "d"}.WithRelevance(0.75),
		TitleEmbedding: []float32{0.25, -0.5},
		BowEmbedding:   []float32{1, 0},
		FeedbackDate:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := MarshalFeedbackRecord(record)
	require.NoError(t, err)

	decoded, err := UnmarshalFeedbackRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record.TitleEmbedding, decoded.TitleEmbedding)
	assert.Equal(t, record.BowEmbedding, decoded.BowEmbedding)
	assert.Equal(t, 0.75, decoded.KnownRelevance())
	assert.True(t, record.FeedbackDate.Equal(decoded.FeedbackDate))
}
