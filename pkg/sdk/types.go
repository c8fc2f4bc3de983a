package catalogqa

// Intent is the routing decision for a question.
type Intent string

// Intent constants.
const (
	IntentProduct Intent = "PRODUCT"
	IntentFAQ     Intent = "FAQ"
)

// Product is a catalog row.
type Product struct {
	Name     string
	Category string
	Price    float64
	Rating   float64
	Stock    int
}

// FAQEntry is a canonical question with its answer.
type FAQEntry struct {
	Question string
	Answer   string
}

// Answer is the result of a question.
type Answer struct {
	ID     string
	Intent Intent
	Text   string // formatted answer, ready to display

	Filter   string    // extracted filter, product answers only
	Products []Product // displayed products, at most the display limit
	Total    int       // matches before truncation

	FAQIndex        int // -1 for product answers
	MatchedQuestion string
}
