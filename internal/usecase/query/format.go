package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// DefaultDisplayLimit is the number of products shown in a product answer.
const DefaultDisplayLimit = 5

// Fixed answer texts.
const (
	NoResultsMessage = "No products found matching your criteria."
	productsHeader   = "Here are the matching products:\n\n"
)

// FormatProducts renders products as a bulleted answer. An empty list yields NoResultsMessage.
func FormatProducts(products []product.Product) string {
	if len(products) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	b.WriteString(productsHeader)
	for _, p := range products {
		fmt.Fprintf(&b, "- %s\n", p.Name())
		fmt.Fprintf(&b, "  Price: $%.2f\n", p.Price())
		fmt.Fprintf(&b, "  Rating: %.1f/5.0\n", p.Rating())
		fmt.Fprintf(&b, "  Stock: %d units\n\n", p.Stock())
	}
	return b.String()
}
