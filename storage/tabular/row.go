package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/hemeroteca/core"
)

// Header lists the CSV column names in order.
var Header = []string{
	"Channel",
	"Title",
	"Link",
	"Description",
	"Creators",
	"Publication Date",
	"Categories",
	"Keywords",
	"Clean Content",
	"Error",
	"Feedback Date",
	"Relevance",
	"Title Embedding",
	"BOW Embedding",
}

// FeedbackDateLayout is the text form of feedback dates in both formats.
const FeedbackDateLayout = time.RFC3339

// row is the flat, all-text form of a FeedbackRecord.
type row [14]string

func toRow(r *core.FeedbackRecord) row {
	var errText, relevance string
	if r.Item.Error != nil {
		errText = r.Item.Error.String()
	}
	if r.Item.Relevance != nil {
		relevance = strconv.FormatFloat(*r.Item.Relevance, 'g', -1, 64)
	}
	var date string
	if !r.FeedbackDate.IsZero() {
		date = r.FeedbackDate.Format(FeedbackDateLayout)
	}

	return row{
		r.Item.Channel,
		r.Item.Title,
		r.Item.Link,
		r.Item.Description,
		r.Item.Creators,
		r.Item.PubDate,
		r.Item.Categories,
		r.Item.Keywords,
		r.Item.CleanContent,
		errText,
		date,
		relevance,
		formatVector(r.TitleEmbedding),
		formatVector(r.BowEmbedding),
	}
}

func fromRow(rw row) (*core.FeedbackRecord, error) {
	record := &core.FeedbackRecord{
		Item: core.Item{
			Channel:      rw[0],
			Title:        rw[1],
			Link:         rw[2],
			Description:  rw[3],
			Creators:     rw[4],
			PubDate:      rw[5],
			Categories:   rw[6],
			Keywords:     rw[7],
			CleanContent: rw[8],
		},
	}

	if rw[9] != "" {
		perr, err := core.ParsePipelineError(rw[9])
		if err != nil {
			return nil, fmt.Errorf("%w: error column: %w", ErrBadRow, err)
		}
		record.Item.Error = perr
	}
	if rw[10] != "" {
		date, err := time.Parse(FeedbackDateLayout, rw[10])
		if err != nil {
			return nil, fmt.Errorf("%w: feedback date: %w", ErrBadRow, err)
		}
		record.FeedbackDate = date
	}
	if rw[11] != "" {
		relevance, err := strconv.ParseFloat(rw[11], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: relevance: %w", ErrBadRow, err)
		}
		record.Item.Relevance = &relevance
	}

	var err error
	if record.TitleEmbedding, err = parseVector(rw[12]); err != nil {
		return nil, fmt.Errorf("%w: title embedding: %w", ErrBadRow, err)
	}
	if record.BowEmbedding, err = parseVector(rw[13]); err != nil {
		return nil, fmt.Errorf("%w: bow embedding: %w", ErrBadRow, err)
	}

	if err := core.ValidateFeedbackRecord(record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRow, err)
	}
	return record, nil
}

// formatVector joins the components with commas.
func formatVector(v []float32) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(float64(x), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

// parseVector reads comma-joined numbers. Surrounding brackets and
// spaces, as printed by DuckDB, are accepted.
func parseVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	v := make([]float32, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		v[i] = float32(x)
	}
	return v, nil
}
