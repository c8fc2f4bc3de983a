package domain

import "strings"

// Intent is the routing decision for a query.
type Intent int

const (
	// IntentFAQ routes to semantic FAQ retrieval. It is the zero value.
	IntentFAQ Intent = iota
	// IntentProduct routes to structured catalog filtering.
	IntentProduct
)

// Labels the classification provider is asked to emit.
const (
	LabelProduct = "PRODUCT"
	LabelFAQ     = "FAQ"
)

// String returns the provider label of the intent.
func (i Intent) String() string {
	if i == IntentProduct {
		return LabelProduct
	}
	return LabelFAQ
}

// ParseIntent normalizes raw provider output. Only the literal PRODUCT label
// (after trimming and upper-casing) selects IntentProduct; everything else is FAQ.
func ParseIntent(raw string) Intent {
	if strings.ToUpper(strings.TrimSpace(raw)) == LabelProduct {
		return IntentProduct
	}
	return IntentFAQ
}
