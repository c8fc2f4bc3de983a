package catalogqa

import (
	"context"
	"strings"

	healthuc "github.com/kailas-cloud/catalogqa/internal/usecase/health"
	queryuc "github.com/kailas-cloud/catalogqa/internal/usecase/query"
)

// --- queryUseCase mock ---

type mockQueryUC struct {
	answerFn func(ctx context.Context, text string) (queryuc.Response, error)
	searchFn func(ctx context.Context, text string, limit int) (queryuc.Response, error)
	faqFn    func(ctx context.Context, text string) (queryuc.Response, error)
}

func (m *mockQueryUC) Answer(ctx context.Context, text string) (queryuc.Response, error) {
	return m.answerFn(ctx, text)
}

func (m *mockQueryUC) SearchProducts(ctx context.Context, text string, limit int) (queryuc.Response, error) {
	return m.searchFn(ctx, text, limit)
}

func (m *mockQueryUC) LookupFAQ(ctx context.Context, text string) (queryuc.Response, error) {
	return m.faqFn(ctx, text)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- providers ---

// keywordEmbedder returns a one-hot vector over a tiny vocabulary,
// so nearest-neighbor results are predictable.
type keywordEmbedder struct {
	calls int
	err   error
}

var vocabulary = []string{"return", "track", "ship"}

func (e *keywordEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	e.calls++
	if e.err != nil {
		return EmbeddingResult{}, e.err
	}
	vec := make([]float32, len(vocabulary))
	lower := strings.ToLower(text)
	for i, w := range vocabulary {
		if strings.Contains(lower, w) {
			vec[i] = 1
		}
	}
	return EmbeddingResult{Embedding: vec, PromptTokens: 2, TotalTokens: 2}, nil
}

// batchKeywordEmbedder also implements BatchEmbedder.
type batchKeywordEmbedder struct {
	keywordEmbedder
	batches int
}

func (e *batchKeywordEmbedder) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	e.batches++
	out := BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i, t := range texts {
		r, err := e.keywordEmbedder.Embed(ctx, t)
		if err != nil {
			return BatchEmbeddingResult{}, err
		}
		out.Embeddings[i] = r.Embedding
		out.TotalTokens += r.TotalTokens
	}
	return out, nil
}

// dollarClassifier answers PRODUCT when the question mentions a price.
type dollarClassifier struct {
	err error
}

func (c *dollarClassifier) Complete(_ context.Context, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if strings.Contains(prompt, "$") {
		return "PRODUCT", nil
	}
	return "FAQ", nil
}

func testProducts() []Product {
	return []Product{
		{Name: "4K TV", Category: "Electronics", Price: 450, Rating: 4.8, Stock: 3},
		{Name: "Bluetooth Speaker", Category: "Electronics", Price: 80, Rating: 4.5, Stock: 10},
		{Name: "Radio", Category: "Electronics", Price: 30, Rating: 3.9, Stock: 0},
		{Name: "Gaming Laptop", Category: "Computers", Price: 1500, Rating: 4.7, Stock: 2},
	}
}

func testFAQ() []FAQEntry {
	return []FAQEntry{
		{Question: "What is your return policy?", Answer: "Returns are accepted within 30 days."},
		{Question: "How do I track my order?", Answer: "Use the tracking link in your email."},
		{Question: "Do you ship internationally?", Answer: "We ship to over 50 countries."},
	}
}
