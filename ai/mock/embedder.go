package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

// DefaultDimensions is the dimensionality of generated vectors,
// matching the MiniLM sentence-transformer.
const DefaultDimensions = 384

// MockEmbedder is a test double for ai.Embedder.
//
// Resolution order for a text: the matching Func field, then Fixed,
// then DeterministicVector. Safe for concurrent use once configured.
type MockEmbedder struct {
	// EmbedTextFunc replaces EmbedText entirely when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc replaces EmbedTexts entirely when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Fixed pins the vector returned for specific texts, so a test can
	// place a title next to (or far from) a stored feedback record.
	Fixed map[string][]float32

	// Dimensions overrides DefaultDimensions when positive.
	Dimensions int

	callCount atomic.Int64
	mu        sync.Mutex
	texts     []string
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount.Add(1)
	m.record(text)

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return m.vector(text), nil
}

func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount.Add(1)
	m.record(texts...)

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vector(text)
	}
	return out, nil
}

func (m *MockEmbedder) vector(text string) []float32 {
	if v, ok := m.Fixed[text]; ok {
		return append([]float32(nil), v...)
	}
	dim := DefaultDimensions
	if m.Dimensions > 0 {
		dim = m.Dimensions
	}
	return DeterministicVector(text, dim)
}

func (m *MockEmbedder) record(texts ...string) {
	m.mu.Lock()
	m.texts = append(m.texts, texts...)
	m.mu.Unlock()
}

// CallCount counts EmbedText and EmbedTexts calls, one per call.
func (m *MockEmbedder) CallCount() int {
	return int(m.callCount.Load())
}

// Texts returns every text received so far, in arrival order.
func (m *MockEmbedder) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// Reset clears counters, recorded texts and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount.Store(0)
	m.mu.Lock()
	m.texts = nil
	m.mu.Unlock()
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
	m.Fixed = nil
}

// DeterministicVector derives a unit vector of length dim from text.
// Equal texts give equal vectors; different texts are almost never parallel.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()

	v := make([]float32, dim)
	var norm float64
	for i := range v {
		// xorshift64
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		v[i] = float32(state%2001)/1000 - 1
		norm += float64(v[i]) * float64(v[i])
	}
	if norm == 0 {
		return v
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= scale
	}
	return v
}
