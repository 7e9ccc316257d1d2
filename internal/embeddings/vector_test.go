// ABOUTME: Tests for cosine similarity and Euclidean distance over flavor vectors.
// ABOUTME: Covers identical, orthogonal, zero, mismatched, and symmetric cases.
package embeddings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarityIdentical(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{0.9, 0.3, 0.2, 0.9, 0.8, 0.8, 0.7, 0.3},
		{0.001, 0, 0, 0, 0, 0, 0, 0},
	}
	for _, v := range vectors {
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9, "identical vectors %v", v)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0, 0}, []float32{0, 1, 0}), 1e-4)
}

func TestCosineSimilarityOpposite(t *testing.T) {
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0, 0}, []float32{-1, 0, 0}), 1e-4)
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	pairs := [][2][]float32{
		{{0.9, 0.3, 0.2, 0.9, 0.8, 0.8, 0.7, 0.3}, {0.8, 0.5, 0.6, 0.3, 0.74, 0.4, 0.54, 0.74}},
		{{0.1, 0.2, 0.3}, {0.3, 0.2, 0.1}},
		{{5, 0, 1}, {0.5, 0.5, 0.5}},
	}
	for _, p := range pairs {
		assert.Equal(t, CosineSimilarity(p[0], p[1]), CosineSimilarity(p[1], p[0]))
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	zero := make([]float32, Dimensions)
	v := []float32{0.9, 0.3, 0.2, 0.9, 0.8, 0.8, 0.7, 0.3}

	assert.Zero(t, CosineSimilarity(zero, v))
	assert.Zero(t, CosineSimilarity(v, zero))
	assert.Zero(t, CosineSimilarity(zero, zero))
}

func TestCosineSimilarityDifferentLengths(t *testing.T) {
	assert.Zero(t, CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
}

func TestCosineSimilarityEmpty(t *testing.T) {
	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity(nil, []float32{1}))
}

func TestEuclideanDistance(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{3, 4, 0}

	assert.InDelta(t, 5.0, EuclideanDistance(a, b), 1e-9)
	assert.Zero(t, EuclideanDistance(b, b))
	assert.True(t, math.IsInf(EuclideanDistance(a, []float32{1}), 1), "mismatched lengths")
}
