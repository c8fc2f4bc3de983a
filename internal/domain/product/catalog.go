package product

import "slices"

// Catalog is the immutable, ordered product table.
type Catalog struct {
	products   []Product
	categories []Category
}

// NewCatalog creates a Catalog. The input slice is copied.
func NewCatalog(products []Product) *Catalog {
	seen := make(map[Category]struct{})
	var categories []Category
	for _, p := range products {
		if _, ok := seen[p.category]; ok {
			continue
		}
		seen[p.category] = struct{}{}
		categories = append(categories, p.category)
	}
	return &Catalog{products: slices.Clone(products), categories: categories}
}

// Products returns a copy of all products in catalog order.
func (c *Catalog) Products() []Product { return slices.Clone(c.products) }

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Categories returns distinct categories in first-appearance order.
func (c *Catalog) Categories() []Category { return slices.Clone(c.categories) }
