// Package catalog applies filter specs to the in-memory product catalog.
package catalog

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/catalogqa/internal/domain/filter"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// predicate is one conjoined filter step.
type predicate func(p product.Product) bool

// Engine runs structured queries against a read-only catalog.
// Safe for concurrent use.
type Engine struct {
	catalog *product.Catalog
}

// New creates a query engine over catalog.
func New(catalog *product.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Query filters by category, then price bound, then stock, and returns
// the survivors sorted by rating descending. Equal ratings keep catalog
// order. The result is never nil.
func (e *Engine) Query(spec filter.Spec) []product.Product {
	results := e.catalog.Products()
	for _, keep := range predicates(spec) {
		results = slices.DeleteFunc(results, func(p product.Product) bool { return !keep(p) })
	}

	slices.SortStableFunc(results, func(a, b product.Product) int {
		return cmp.Compare(b.Rating(), a.Rating())
	})

	if results == nil {
		return []product.Product{}
	}
	return results
}

// Categories returns the catalog categories in first-appearance order.
func (e *Engine) Categories() []product.Category {
	return e.catalog.Categories()
}

func predicates(spec filter.Spec) []predicate {
	var out []predicate
	if c, ok := spec.Category(); ok {
		out = append(out, func(p product.Product) bool { return p.Category() == c })
	}
	if b, ok := spec.PriceBound(); ok {
		out = append(out, func(p product.Product) bool { return b.Admits(p.Price()) })
	}
	if spec.RequireInStock() {
		out = append(out, product.Product.InStock)
	}
	return out
}
