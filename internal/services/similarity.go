package services

import (
	"fmt"
	"math"
)

// CosineSimilarity returns dot(a,b) / (‖a‖·‖b‖) as a float64.
//
// A zero-norm vector yields exactly 0.0 rather than NaN so degenerate
// embeddings cannot poison downstream ranking. Mismatched lengths panic:
// both vectors come from the same embedding model, so unequal dimensions
// are a programming error, not a recoverable condition.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("cosine similarity: vector length mismatch (%d vs %d)", len(a), len(b)))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
