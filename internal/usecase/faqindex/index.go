// Package faqindex is the in-memory nearest-neighbor index over FAQ questions.
package faqindex

import (
	"context"
	"fmt"
	"slices"

	"github.com/kailas-cloud/catalogqa/internal/domain"
)

// Index maps corpus positions to embedding vectors of one fixed dimension.
// It is built once and read-only afterwards, so concurrent Nearest calls are safe.
type Index struct {
	vectors [][]float32
	dim     int
}

// Build embeds corpus in order and indexes the vectors.
// Fails on an empty corpus, on provider errors, and on inconsistent output.
func Build(ctx context.Context, embedder domain.Embedder, corpus []string) (*Index, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("build faq index: %w", domain.ErrEmptyCorpus)
	}

	res, err := domain.EmbedAll(ctx, embedder, corpus)
	if err != nil {
		return nil, fmt.Errorf("build faq index: %w", err)
	}

	return FromVectors(res.Embeddings, len(corpus))
}

// FromVectors indexes precomputed vectors. want is the expected entry count.
func FromVectors(vectors [][]float32, want int) (*Index, error) {
	if want == 0 || len(vectors) == 0 {
		return nil, fmt.Errorf("build faq index: %w", domain.ErrEmptyCorpus)
	}
	if len(vectors) != want {
		return nil, fmt.Errorf("build faq index: got %d vectors for %d entries: %w",
			len(vectors), want, domain.ErrVectorDimMismatch)
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("build faq index: entry 0 has an empty vector: %w", domain.ErrVectorDimMismatch)
	}

	stored := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("build faq index: entry %d has dimension %d, want %d: %w",
				i, len(v), dim, domain.ErrVectorDimMismatch)
		}
		stored[i] = slices.Clone(v)
	}

	return &Index{vectors: stored, dim: dim}, nil
}

// Nearest returns the position of the vector closest to v by squared
// Euclidean distance. Ties go to the lowest position.
func (x *Index) Nearest(v []float32) (int, error) {
	if len(v) != x.dim {
		return 0, fmt.Errorf("query dimension %d, index dimension %d: %w", len(v), x.dim, domain.ErrVectorDimMismatch)
	}

	best := 0
	bestDist := squaredL2(v, x.vectors[0])
	for i := 1; i < len(x.vectors); i++ {
		if d := squaredL2(v, x.vectors[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// Len returns the number of indexed entries.
func (x *Index) Len() int { return len(x.vectors) }

// Dimensions returns the fixed vector dimension.
func (x *Index) Dimensions() int { return x.dim }

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
