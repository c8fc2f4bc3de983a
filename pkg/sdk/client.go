package catalogqa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/faq"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
	"github.com/kailas-cloud/catalogqa/internal/repository/source"
	openaiTransport "github.com/kailas-cloud/catalogqa/internal/transport/openai"
	cataloguc "github.com/kailas-cloud/catalogqa/internal/usecase/catalog"
	"github.com/kailas-cloud/catalogqa/internal/usecase/extract"
	"github.com/kailas-cloud/catalogqa/internal/usecase/faqindex"
	healthuc "github.com/kailas-cloud/catalogqa/internal/usecase/health"
	"github.com/kailas-cloud/catalogqa/internal/usecase/intent"
	queryuc "github.com/kailas-cloud/catalogqa/internal/usecase/query"
)

// Internal interfaces for substitution in tests.
type queryUseCase interface {
	Answer(ctx context.Context, text string) (queryuc.Response, error)
	SearchProducts(ctx context.Context, text string, limit int) (queryuc.Response, error)
	LookupFAQ(ctx context.Context, text string) (queryuc.Response, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Client is the catalogqa SDK entry point. It is safe for concurrent use.
type Client struct {
	queries queryUseCase
	health  healthUseCase
	obs     *observer
}

// New loads the catalog and FAQ, embeds every FAQ question and returns a ready Client.
// ctx bounds the indexing calls to the embedding provider.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	embedder, completer, err := providers(cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	corpus, err := loadFAQ(cfg)
	if err != nil {
		return nil, err
	}

	index, err := faqindex.Build(ctx, embedder, corpus.Questions())
	if err != nil {
		return nil, fmt.Errorf("catalogqa: %w", err)
	}

	synonyms := make(map[string]product.Category, len(cfg.synonyms))
	for word, category := range cfg.synonyms {
		synonyms[word] = product.Category(category)
	}
	engine := cataloguc.New(catalog)

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		queries: queryuc.New(queryuc.Deps{
			Router:       intent.New(completer),
			Extractor:    extract.New(engine.Categories(), synonyms),
			Engine:       engine,
			Embedder:     embedder,
			Index:        index,
			Corpus:       corpus,
			DisplayLimit: cfg.displayLimit,
		}),
		health: healthuc.New(healthDeps(embedder, completer)),
		obs:    obs,
	}, nil
}

// Close releases resources. The in-process client holds none today.
func (c *Client) Close() {}

// Ask classifies the question and answers it from the catalog or the FAQ.
func (c *Client) Ask(ctx context.Context, question string) (ans Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err) }()

	resp, err := c.queries.Answer(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	return answerFromResponse(resp), nil
}

// SearchProducts answers from the catalog without classification.
// limit <= 0 uses the display limit.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) (ans Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_products", start, err) }()

	resp, err := c.queries.SearchProducts(ctx, query, limit)
	if err != nil {
		return Answer{}, fmt.Errorf("search products: %w", err)
	}
	return answerFromResponse(resp), nil
}

// LookupFAQ answers from the FAQ without classification.
func (c *Client) LookupFAQ(ctx context.Context, question string) (ans Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("lookup_faq", start, err) }()

	resp, err := c.queries.LookupFAQ(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("lookup faq: %w", err)
	}
	return answerFromResponse(resp), nil
}

func providers(cfg *clientConfig) (domain.Embedder, domain.Completer, error) {
	var (
		embedder  domain.Embedder
		completer domain.Completer
	)

	if cfg.openai != nil {
		oc := &openaiTransport.Config{
			APIKey:   cfg.openai.apiKey,
			BaseURL:  cfg.openai.baseURL,
			Provider: "openai",
		}
		if oc.APIKey == "" {
			return nil, nil, fmt.Errorf("catalogqa: openai api key is empty: %w", ErrConfiguration)
		}
		emb, chat := *oc, *oc
		emb.Model = cfg.openai.embeddingModel
		chat.Model = cfg.openai.chatModel
		embedder = openaiTransport.NewEmbedder(&emb)
		completer = openaiTransport.NewCompleter(&chat)
	}
	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	}
	if cfg.classifier != nil {
		completer = cfg.classifier
	}

	if embedder == nil {
		return nil, nil, fmt.Errorf("catalogqa: embedder required (use WithEmbedder or WithOpenAI): %w", ErrConfiguration)
	}
	if completer == nil {
		return nil, nil, fmt.Errorf("catalogqa: classifier required (use WithClassifier or WithOpenAI): %w",
			ErrConfiguration)
	}
	return embedder, completer, nil
}

func loadCatalog(cfg *clientConfig) (*product.Catalog, error) {
	if cfg.catalogPath != "" {
		c, err := source.LoadCatalog(cfg.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("catalogqa: %w", err)
		}
		return c, nil
	}

	products := make([]product.Product, 0, len(cfg.products))
	for i, p := range cfg.products {
		prod, err := product.New(p.Name, product.Category(strings.TrimSpace(p.Category)), p.Price, p.Rating, p.Stock)
		if err != nil {
			return nil, fmt.Errorf("catalogqa: product %d: %w: %w", i, ErrIngestion, err)
		}
		products = append(products, prod)
	}
	return product.NewCatalog(products), nil
}

func loadFAQ(cfg *clientConfig) (*faq.Corpus, error) {
	if cfg.faqPath != "" {
		c, err := source.LoadFAQ(cfg.faqPath)
		if err != nil {
			return nil, fmt.Errorf("catalogqa: %w", err)
		}
		return c, nil
	}

	entries := make([]faq.Entry, len(cfg.faq))
	for i, e := range cfg.faq {
		if strings.TrimSpace(e.Question) == "" {
			return nil, fmt.Errorf("catalogqa: faq entry %d has an empty question: %w", i, ErrIngestion)
		}
		entries[i] = faq.Entry{Question: e.Question, Answer: e.Answer}
	}
	return faq.FromEntries(entries), nil
}

// healthDeps checks only providers that can report health.
// A typed nil must never reach healthuc.Deps.
func healthDeps(embedder domain.Embedder, completer domain.Completer) healthuc.Deps {
	var d healthuc.Deps
	if hc, ok := embedder.(healthChecker); ok {
		d.Embedding = hc
	}
	if hc, ok := completer.(healthChecker); ok {
		d.Classifier = hc
	}
	return d
}

func answerFromResponse(r queryuc.Response) Answer {
	ans := Answer{
		ID:              r.ID.String(),
		Intent:          Intent(r.Intent.String()),
		Text:            r.Text,
		Total:           r.Total,
		FAQIndex:        r.FAQIndex,
		MatchedQuestion: r.MatchedQuestion,
	}
	if r.Intent == domain.IntentProduct {
		ans.Filter = r.Spec.String()
		ans.Products = make([]Product, len(r.Products))
		for i, p := range r.Products {
			ans.Products[i] = Product{
				Name:     p.Name(),
				Category: p.Category().String(),
				Price:    p.Price(),
				Rating:   p.Rating(),
				Stock:    p.Stock(),
			}
		}
	}
	return ans
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder and domain.BatchEmbedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, providerError(err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	be, ok := a.inner.(BatchEmbedder)
	if !ok {
		return domain.BatchFallback(ctx, a, texts)
	}
	r, err := be.BatchEmbed(ctx, texts)
	if err != nil {
		return domain.BatchEmbeddingResult{}, providerError(err)
	}
	return domain.BatchEmbeddingResult{
		Embeddings:   r.Embeddings,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) HealthCheck(ctx context.Context) error {
	if hc, ok := a.inner.(healthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func providerError(err error) error {
	if errors.Is(err, ErrEmbeddingProviderError) {
		return fmt.Errorf("embed: %w", err)
	}
	return fmt.Errorf("embed: %w: %w", ErrEmbeddingProviderError, err)
}
