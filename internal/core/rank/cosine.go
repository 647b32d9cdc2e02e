package rank

import "math"

// cosineSimilarity computes the cosine of the angle between two vectors,
// zero-padding the shorter one so vectors of different dimensionality (the
// term-frequency fallback produces those) stay comparable. A zero or empty
// vector scores 0 rather than producing NaN.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		var x, y float64
		if i < len(a) {
			x = float64(a[i])
		}
		if i < len(b) {
			y = float64(b[i])
		}
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
