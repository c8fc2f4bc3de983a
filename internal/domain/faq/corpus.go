package faq

import (
	"fmt"
	"slices"
)

// Entry is a canonical question paired with its answer.
type Entry struct {
	Question string
	Answer   string
}

// Corpus is the immutable list of FAQ entries. Position i of the question
// list and position i of the answer list refer to the same entry.
type Corpus struct {
	entries []Entry
}

// NewCorpus pairs questions and answers by position.
func NewCorpus(questions, answers []string) (*Corpus, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("questions and answers differ in length: %d != %d", len(questions), len(answers))
	}
	entries := make([]Entry, len(questions))
	for i := range questions {
		entries[i] = Entry{Question: questions[i], Answer: answers[i]}
	}
	return &Corpus{entries: entries}, nil
}

// FromEntries creates a Corpus from already paired entries. The slice is copied.
func FromEntries(entries []Entry) *Corpus {
	return &Corpus{entries: slices.Clone(entries)}
}

// Len returns the number of entries.
func (c *Corpus) Len() int { return len(c.entries) }

// Questions returns the questions in corpus order.
func (c *Corpus) Questions() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Question
	}
	return out
}

// Entry returns the entry at position i.
func (c *Corpus) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(c.entries) {
		return Entry{}, fmt.Errorf("faq entry %d out of range [0, %d)", i, len(c.entries))
	}
	return c.entries[i], nil
}

// Answer returns the answer at position i.
func (c *Corpus) Answer(i int) (string, error) {
	e, err := c.Entry(i)
	if err != nil {
		return "", err
	}
	return e.Answer, nil
}
