package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "link", content: "https://elpais.com/espana/2024-05-01/articulo.html"},
		{name: "empty string", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)
			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestItem_ID(t *testing.T) {
	a := Item{Link: "https://example.com/a"}
	b := Item{Link: "https://example.com/b", Title: "other"}
	if a.ID() == b.ID() {
		t.Errorf("Item.ID() produced same ID for different links")
	}
	if a.ID() != IDFromContent("https://example.com/a") {
		t.Errorf("Item.ID() is not derived from the link")
	}
}

func TestItem_BagOfWords(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "union is deduplicated and lowercased",
			item: Item{Keywords: "Elecciones,gobierno", Categories: "gobierno,política"},
			want: "elecciones gobierno política",
		},
		{
			name: "absent fields",
			item: Item{},
			want: "",
		},
		{
			name: "only categories",
			item: Item{Categories: "economía"},
			want: "economía",
		},
		{
			name: "empty tokens are skipped",
			item: Item{Keywords: "a,,b"},
			want: "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.BagOfWords(); got != tt.want {
				t.Errorf("Item.BagOfWords() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItem_WithRelevance(t *testing.T) {
	item := Item{Title: "t"}
	scored := item.WithRelevance(4.5)

	if item.Relevance != nil {
		t.Errorf("WithRelevance() mutated the receiver")
	}
	if scored.RelevanceOrZero() != 4.5 {
		t.Errorf("RelevanceOrZero() = %v, want 4.5", scored.RelevanceOrZero())
	}
	if item.RelevanceOrZero() != 0 {
		t.Errorf("RelevanceOrZero() on unscored item = %v, want 0", item.RelevanceOrZero())
	}
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in      string
		want    Operator
		wantErr bool
	}{
		{in: "and", want: OperatorAnd},
		{in: "AND", want: OperatorAnd},
		{in: " or ", want: OperatorOr},
		{in: "xor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperator(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOperator(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseOperator(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePubDate(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
	}{
		{in: "Wed, 01 May 2024 10:00:00 +0200", wantOK: true},
		{in: "Wed, 01 May 2024 10:00:00 GMT", wantOK: true},
		{in: "Wed, 1 May 2024 10:00:00 +0200", wantOK: true},
		{in: "2024-05-01T10:00:00Z", wantOK: true},
		{in: "", wantOK: false},
		{in: "yesterday", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, ok := ParsePubDate(tt.in)
			if ok != tt.wantOK {
				t.Errorf("ParsePubDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
		})
	}
}
