// Package intent decides whether a query is a product search or a general question.
package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

const promptTemplate = "Determine if this is a product search query or a general FAQ question: %s\n" +
	"Just respond with either '" + domain.LabelProduct + "' or '" + domain.LabelFAQ + "'."

// Router classifies queries through a text completion provider.
type Router struct {
	completer domain.Completer
}

// New creates a Router.
func New(completer domain.Completer) *Router {
	return &Router{completer: completer}
}

// Prompt renders the classification instruction for a query.
func Prompt(query string) string {
	return fmt.Sprintf(promptTemplate, query)
}

// Classify returns the intent of query. Any output other than the product
// label is FAQ; provider failures and empty output are ErrClassificationFailed.
func (r *Router) Classify(ctx context.Context, query string) (domain.Intent, error) {
	raw, err := r.completer.Complete(ctx, Prompt(query))
	if err != nil {
		if errors.Is(err, domain.ErrClassificationFailed) {
			return domain.IntentFAQ, fmt.Errorf("classify: %w", err)
		}
		return domain.IntentFAQ, fmt.Errorf("classify: %v: %w", err, domain.ErrClassificationFailed)
	}
	if strings.TrimSpace(raw) == "" {
		return domain.IntentFAQ, fmt.Errorf("classify: empty provider output: %w", domain.ErrClassificationFailed)
	}

	intent := domain.ParseIntent(raw)
	metrics.IntentsTotal.WithLabelValues(intent.String()).Inc()
	return intent, nil
}
