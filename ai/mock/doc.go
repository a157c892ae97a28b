// Package mock provides test double implementations of AI service interfaces.
//
// MockEmbedder, MockSummarizer and MockProvider let tests run without an
// embedding or chat endpoint. Behavior can be replaced through function
// fields and every mock counts its calls.
//
// # Usage in Tests
//
//	provider := mock.NewMockProvider()
//	vector, err := provider.Embedder().EmbedText(ctx, "test")
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("unavailable")
//	}
//
// # Default Behavior
//
//   - MockEmbedder: unit vectors derived from an FNV hash of the text
//   - MockSummarizer: the first sentence of the text
//   - MockProvider: aggregates a mock embedder and summarizer
package mock
