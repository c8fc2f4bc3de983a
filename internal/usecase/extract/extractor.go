// Package extract turns free-text product questions into filter specs.
package extract

import (
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain/filter"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// Extractor applies an ordered list of rules. Earlier rules take precedence
// for single-valued fields.
type Extractor struct {
	rules []Rule
}

// New creates the standard extractor: exact category, synonym category,
// dollar price, keyword price, top-rated, in stock.
// extraSynonyms extend or override product.DefaultSynonyms (keys are lowercased).
func New(categories []product.Category, extraSynonyms map[string]product.Category) *Extractor {
	synonyms := product.DefaultSynonyms()
	for word, c := range extraSynonyms {
		synonyms[strings.ToLower(strings.TrimSpace(word))] = c
	}

	return NewWithRules(
		ExactCategory(categories),
		SynonymCategory(synonyms),
		DollarPrice(),
		KeywordPrice(),
		TopRated(),
		InStock(),
	)
}

// NewWithRules creates an extractor over a custom rule list.
func NewWithRules(rules ...Rule) *Extractor {
	return &Extractor{rules: rules}
}

// Extract builds the filter spec for query. It never fails.
func (e *Extractor) Extract(query string) filter.Spec {
	q := NewQuery(query)
	var spec filter.Spec
	for _, r := range e.rules {
		spec = spec.Merge(r.Apply(q))
	}
	return spec
}

// RuleNames returns rule names in precedence order.
func (e *Extractor) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}
