// ABOUTME: Flavor vector type and the similarity measures used over it.
// ABOUTME: Cosine similarity for scoring, Euclidean distance for nearest-neighbor lookup.
package embeddings

import "math"

// Dimensions is the length of every flavor vector.
const Dimensions = 8

// Component indexes, in vector order.
const (
	Acidity = iota
	Body
	Sweetness
	Bitterness
	Fruity
	Chocolatey
	Nutty
	Floral
)

// ComponentNames labels each vector component, in vector order.
var ComponentNames = [Dimensions]string{
	"acidity", "body", "sweetness", "bitterness",
	"fruity", "chocolatey", "nutty", "floral",
}

// Vector is an 8-dimensional flavor vector.
type Vector []float32

// Float32s returns the vector as a plain slice for storage layers.
func (v Vector) Float32s() []float32 {
	return []float32(v)
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 when either vector is empty, the lengths differ, or either has zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EuclideanDistance computes the L2 distance between two vectors.
// Mismatched lengths return +Inf so they sort after every real candidate.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
