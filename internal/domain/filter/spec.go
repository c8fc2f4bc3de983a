package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// Direction is the comparison applied by a price bound.
type Direction int

const (
	// AtMost keeps products with price <= threshold (default).
	AtMost Direction = iota
	// AtLeast keeps products with price >= threshold.
	AtLeast
)

// String returns the direction name.
func (d Direction) String() string {
	if d == AtLeast {
		return "at_least"
	}
	return "at_most"
}

// PriceBound is an inclusive price threshold with a direction.
type PriceBound struct {
	threshold float64
	direction Direction
}

// NewPriceBound validates and creates a PriceBound. Threshold must be finite and >= 0.
func NewPriceBound(threshold float64, direction Direction) (PriceBound, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return PriceBound{}, fmt.Errorf("price threshold must be a non-negative number, got %v", threshold)
	}
	return PriceBound{threshold: threshold, direction: direction}, nil
}

// Threshold returns the bound value.
func (b PriceBound) Threshold() float64 { return b.threshold }

// Direction returns the comparison direction.
func (b PriceBound) Direction() Direction { return b.direction }

// Admits reports whether price satisfies the bound.
func (b PriceBound) Admits(price float64) bool {
	if b.direction == AtLeast {
		return price >= b.threshold
	}
	return price <= b.threshold
}

// Spec is the structured filter extracted from a query.
// The zero value is the identity filter.
type Spec struct {
	category       product.Category
	price          PriceBound
	hasPrice       bool
	sortByRating   bool
	requireInStock bool
}

// WithCategory returns a copy of s restricted to category c.
func (s Spec) WithCategory(c product.Category) Spec {
	s.category = c
	return s
}

// WithPriceBound returns a copy of s with the price bound set.
func (s Spec) WithPriceBound(b PriceBound) Spec {
	s.price = b
	s.hasPrice = true
	return s
}

// WithRatingSort returns a copy of s with the top-rated flag set.
func (s Spec) WithRatingSort() Spec {
	s.sortByRating = true
	return s
}

// WithInStock returns a copy of s that requires stock > 0.
func (s Spec) WithInStock() Spec {
	s.requireInStock = true
	return s
}

// Category returns the category restriction, if any.
func (s Spec) Category() (product.Category, bool) { return s.category, s.category != "" }

// PriceBound returns the price bound, if any.
func (s Spec) PriceBound() (PriceBound, bool) { return s.price, s.hasPrice }

// SortByRatingDesc reports whether the query asked for top-rated products.
// Results are rating-ordered regardless of this flag.
func (s Spec) SortByRatingDesc() bool { return s.sortByRating }

// RequireInStock reports whether only products with stock > 0 match.
func (s Spec) RequireInStock() bool { return s.requireInStock }

// IsIdentity reports whether no predicate is set.
func (s Spec) IsIdentity() bool {
	return s.category == "" && !s.hasPrice && !s.sortByRating && !s.requireInStock
}

// Merge fills fields unset in s from other. Fields already set in s win;
// boolean flags are OR-ed.
func (s Spec) Merge(other Spec) Spec {
	if s.category == "" {
		s.category = other.category
	}
	if !s.hasPrice && other.hasPrice {
		s.price = other.price
		s.hasPrice = true
	}
	s.sortByRating = s.sortByRating || other.sortByRating
	s.requireInStock = s.requireInStock || other.requireInStock
	return s
}

// String renders the spec for logs.
func (s Spec) String() string {
	var parts []string
	if s.category != "" {
		parts = append(parts, "category="+s.category.String())
	}
	if s.hasPrice {
		parts = append(parts, fmt.Sprintf("price(%s %g)", s.price.direction, s.price.threshold))
	}
	if s.sortByRating {
		parts = append(parts, "top_rated")
	}
	if s.requireInStock {
		parts = append(parts, "in_stock")
	}
	if len(parts) == 0 {
		return "identity"
	}
	return strings.Join(parts, " ")
}
