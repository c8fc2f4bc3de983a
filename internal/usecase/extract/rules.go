package extract

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain/filter"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
)

// Rule contributes a partial filter spec. Rules are pure and never fail:
// a rule that cannot produce a clean value returns the zero Spec.
type Rule struct {
	Name  string
	Apply func(q Query) filter.Spec
}

// Phrases that drive price extraction.
var (
	priceKeywords  = []string{"budget", "under", "below"}
	atLeastPhrases = []string{"over", "more than", "above"}
	priceTriggers  = []string{"price", "$"}
	topRatedPhrase = "top-rated"
	inStockPhrase  = "in stock"
)

// ExactCategory matches the first category whose name occurs in the query.
func ExactCategory(categories []product.Category) Rule {
	return Rule{
		Name: "exact_category",
		Apply: func(q Query) filter.Spec {
			for _, c := range categories {
				if c.Lower() != "" && q.Contains(c.Lower()) {
					return filter.Spec{}.WithCategory(c)
				}
			}
			return filter.Spec{}
		},
	}
}

// SynonymCategory maps the first query word found in synonyms to its category.
func SynonymCategory(synonyms map[string]product.Category) Rule {
	return Rule{
		Name: "synonym_category",
		Apply: func(q Query) filter.Spec {
			for _, w := range q.Words {
				if c, ok := synonyms[w]; ok {
					return filter.Spec{}.WithCategory(c)
				}
			}
			return filter.Spec{}
		},
	}
}

// DollarPrice reads the number written right after the first "$".
func DollarPrice() Rule {
	return Rule{
		Name: "dollar_price",
		Apply: func(q Query) filter.Spec {
			if !q.ContainsAny(priceTriggers...) {
				return filter.Spec{}
			}
			idx := strings.Index(q.Raw, "$")
			if idx < 0 {
				return filter.Spec{}
			}
			return priceSpec(q, leadingAmount(q.Raw[idx+1:]))
		},
	}
}

// KeywordPrice reads the number written right before "budget", "under",
// "below" or "less than".
func KeywordPrice() Rule {
	return Rule{
		Name: "keyword_price",
		Apply: func(q Query) filter.Spec {
			if !q.ContainsAny(priceTriggers...) {
				return filter.Spec{}
			}
			for i := range q.Words {
				if i == 0 || !isPriceKeyword(q.Words, i) {
					continue
				}
				if spec := priceSpec(q, q.Words[i-1]); !spec.IsIdentity() {
					return spec
				}
			}
			return filter.Spec{}
		},
	}
}

// TopRated sets the rating-sort flag.
func TopRated() Rule {
	return Rule{
		Name: "top_rated",
		Apply: func(q Query) filter.Spec {
			if q.Contains(topRatedPhrase) {
				return filter.Spec{}.WithRatingSort()
			}
			return filter.Spec{}
		},
	}
}

// InStock requires stock > 0.
func InStock() Rule {
	return Rule{
		Name: "in_stock",
		Apply: func(q Query) filter.Spec {
			if q.Contains(inStockPhrase) {
				return filter.Spec{}.WithInStock()
			}
			return filter.Spec{}
		},
	}
}

func isPriceKeyword(words []string, i int) bool {
	w := words[i]
	for _, k := range priceKeywords {
		if w == k {
			return true
		}
	}
	return w == "less" && i+1 < len(words) && words[i+1] == "than"
}

// Direction returns AtLeast when the query says over/more than/above, else AtMost.
func Direction(q Query) filter.Direction {
	if q.ContainsAny(atLeastPhrases...) {
		return filter.AtLeast
	}
	return filter.AtMost
}

func priceSpec(q Query, token string) filter.Spec {
	v, ok := parseAmount(token)
	if !ok {
		return filter.Spec{}
	}
	bound, err := filter.NewPriceBound(v, Direction(q))
	if err != nil {
		return filter.Spec{}
	}
	return filter.Spec{}.WithPriceBound(bound)
}

// leadingAmount returns the run of digits, dots and thousands commas at the
// start of s, after leading blanks ("200-$400" -> "200", " 1,500?" -> "1,500").
func leadingAmount(s string) string {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != ','
	})
	if end < 0 {
		end = len(s)
	}
	return strings.TrimRight(s[:end], ".,")
}

// parseAmount keeps the digits and dots of token ("1,500" -> 1500, "500?" -> 500).
func parseAmount(token string) (float64, bool) {
	var b strings.Builder
	for _, r := range token {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
