package extract

import (
	"strings"
	"unicode"
)

// Query is the normalized view of a raw query shared by all rules.
type Query struct {
	Raw   string
	Lower string
	// Words are the lowercased whitespace tokens in query order, with
	// surrounding punctuation trimmed. Tokens that trim to nothing are dropped.
	Words []string
}

// NewQuery normalizes raw query text.
func NewQuery(raw string) Query {
	lower := strings.ToLower(raw)
	fields := strings.Fields(lower)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return Query{Raw: raw, Lower: lower, Words: words}
}

// Contains reports whether the lowercased query contains phrase.
func (q Query) Contains(phrase string) bool {
	return strings.Contains(q.Lower, phrase)
}

// ContainsAny reports whether the lowercased query contains any of phrases.
func (q Query) ContainsAny(phrases ...string) bool {
	for _, p := range phrases {
		if q.Contains(p) {
			return true
		}
	}
	return false
}
