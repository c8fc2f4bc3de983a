package product

import "strings"

// Category is a product category name as it appears in the catalog.
type Category string

// Categories of the reference catalog.
const (
	Electronics Category = "Electronics"
	Computers   Category = "Computers"
	Accessories Category = "Accessories"
	Wearables   Category = "Wearables"
)

// String returns the category name.
func (c Category) String() string { return string(c) }

// Lower returns the lowercased category name used for matching.
func (c Category) Lower() string { return strings.ToLower(string(c)) }

// DefaultSynonyms maps lowercase query words to categories.
func DefaultSynonyms() map[string]Category {
	return map[string]Category{
		"laptop":       Computers,
		"laptops":      Computers,
		"computer":     Computers,
		"computers":    Computers,
		"phone":        Electronics,
		"phones":       Electronics,
		"smartphone":   Electronics,
		"smartphones":  Electronics,
		"accessory":    Accessories,
		"accessories":  Accessories,
		"earbud":       Accessories,
		"earbuds":      Accessories,
		"watch":        Wearables,
		"watches":      Wearables,
		"smartwatch":   Wearables,
		"smartwatches": Wearables,
	}
}
