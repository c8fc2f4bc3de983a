package query

import (
	"context"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/filter"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// Classifier routes a query to an intent.
type Classifier interface {
	Classify(ctx context.Context, query string) (domain.Intent, error)
}

// SpecExtractor turns free text into filter predicates.
type SpecExtractor interface {
	Extract(query string) filter.Spec
}

// ProductQuerier applies a filter spec to the catalog.
type ProductQuerier interface {
	Query(spec filter.Spec) []product.Product
}

// NearestFinder finds the closest indexed FAQ question.
type NearestFinder interface {
	Nearest(vec []float32) (int, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
