package product

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0

// ErrInvalidProduct signals a product row that violates the catalog schema.
var ErrInvalidProduct = errors.New("invalid product")

// Product is a catalog row (immutable value object).
type Product struct {
	name     string
	category Category
	price    float64
	rating   float64
	stock    int
}

// New validates and creates a Product.
// Name: non-empty. Price: finite, >= 0. Rating: [0, 5]. Stock: >= 0.
func New(name string, category Category, price, rating float64, stock int) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if category == "" {
		return Product{}, fmt.Errorf("%w: category is required for %q", ErrInvalidProduct, name)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Product{}, fmt.Errorf("%w: price must be non-negative for %q, got %v", ErrInvalidProduct, name, price)
	}
	if math.IsNaN(rating) || rating < 0 || rating > MaxRating {
		return Product{}, fmt.Errorf("%w: rating must be in [0, %.0f] for %q, got %v",
			ErrInvalidProduct, MaxRating, name, rating)
	}
	if stock < 0 {
		return Product{}, fmt.Errorf("%w: stock must be non-negative for %q, got %d", ErrInvalidProduct, name, stock)
	}

	return Product{name: name, category: category, price: price, rating: rating, stock: stock}, nil
}

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Category returns the product category.
func (p Product) Category() Category { return p.category }

// Price returns the unit price.
func (p Product) Price() float64 { return p.price }

// Rating returns the average rating in [0, 5].
func (p Product) Rating() float64 { return p.rating }

// Stock returns the stock level.
func (p Product) Stock() int { return p.stock }

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.stock > 0 }
