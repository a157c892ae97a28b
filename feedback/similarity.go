package feedback

import (
	"fmt"
	"math"
	"time"
)

// Decay parameters.
const (
	DecayPerDay = 0.1
	DecayFloor  = 0.7
)

// DefaultThreshold is the similarity a record must exceed to contribute.
const DefaultThreshold = 0.5

// CosineSimilarity returns the cosine similarity of a and b, computed in
// float64. It is NaN when either vector has zero norm, so such a record
// never passes a threshold. Vectors of different length are a programming
// error and cause a panic.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("feedback: cosine similarity of %d and %d dimensional vectors", len(a), len(b)))
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	return dot / math.Sqrt(normA*normB)
}

// DecayMultiplier returns the age discount for an item published days
// ago: ten percent per day, never below DecayFloor and never above 1.
func DecayMultiplier(days int) float64 {
	return min(max(1-DecayPerDay*float64(days), DecayFloor), 1.0)
}

// DaysBetween returns the whole days from published to now, truncated
// toward zero, with both instants taken in local time. Items published
// in the future yield negative counts.
func DaysBetween(published, now time.Time) int {
	elapsed := now.In(time.Local).Sub(published.In(time.Local))
	return int(elapsed / (24 * time.Hour))
}

// sanitize maps non-finite and negative values to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
