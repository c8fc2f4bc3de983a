package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/config"
	dbRedis "github.com/kailas-cloud/catalogqa/internal/db/redis"
	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
	"github.com/kailas-cloud/catalogqa/internal/repository/embcache"
	"github.com/kailas-cloud/catalogqa/internal/repository/source"
	geminiTransport "github.com/kailas-cloud/catalogqa/internal/transport/gemini"
	openaiTransport "github.com/kailas-cloud/catalogqa/internal/transport/openai"
	cataloguc "github.com/kailas-cloud/catalogqa/internal/usecase/catalog"
	embeddinguc "github.com/kailas-cloud/catalogqa/internal/usecase/embedding"
	"github.com/kailas-cloud/catalogqa/internal/usecase/extract"
	"github.com/kailas-cloud/catalogqa/internal/usecase/faqindex"
	healthuc "github.com/kailas-cloud/catalogqa/internal/usecase/health"
	"github.com/kailas-cloud/catalogqa/internal/usecase/intent"
	queryuc "github.com/kailas-cloud/catalogqa/internal/usecase/query"
)

// classifierProvider is a completion adapter that can report its health.
type classifierProvider interface {
	domain.Completer
	domain.HealthChecker
}

// app is the assembled object graph shared by serve and ask.
type app struct {
	queries *queryuc.Service
	health  *healthuc.Service
	closers []func()
}

// Close releases provider and cache connections in reverse order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp is the composition root: sources, providers, index, services.
// Any error here is fatal at startup.
func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (_ *app, err error) {
	metrics.RegisterAll()

	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	catalog, err := source.LoadCatalog(cfg.Data.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	corpus, err := source.LoadFAQ(cfg.Data.FAQPath)
	if err != nil {
		return nil, fmt.Errorf("load faq: %w", err)
	}
	logger.Info("Data loaded",
		zap.Int("products", catalog.Len()),
		zap.Int("faq_entries", corpus.Len()),
	)

	// Pass a nil interface (not a typed nil pointer) when the cache is off.
	var cache *dbRedis.Store
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		cache, err = openCache(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, cache.Close)
		cachePinger = cache
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	embedder := buildEmbedder(cfg.Embedding, cfg.Cache, cache, logger)

	classifier, closeClassifier, err := buildClassifier(ctx, cfg.Classifier, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeClassifier)

	start := time.Now()
	index, err := faqindex.Build(ctx, embedder, corpus.Questions())
	if err != nil {
		return nil, fmt.Errorf("index faq: %w", err)
	}
	logger.Info("FAQ index built",
		zap.Int("entries", index.Len()),
		zap.Int("dimensions", index.Dimensions()),
		zap.Duration("took", time.Since(start)),
	)

	synonyms, err := synonymsFromConfig(cfg.Catalog.Synonyms)
	if err != nil {
		return nil, err
	}
	engine := cataloguc.New(catalog)

	a.queries = queryuc.New(queryuc.Deps{
		Router:       intent.New(classifier),
		Extractor:    extract.New(engine.Categories(), synonyms),
		Engine:       engine,
		Embedder:     embedder,
		Index:        index,
		Corpus:       corpus,
		DisplayLimit: cfg.Catalog.MaxDisplayResults,
	})
	a.health = healthuc.New(healthuc.Deps{
		Cache:      cachePinger,
		Embedding:  newEmbeddingHealthChecker(embedder),
		Classifier: classifier,
	})
	return a, nil
}

func openCache(ctx context.Context, cfg config.CacheConfig) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	return store, nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction.
// The same chain embeds FAQ questions and queries so both live in one vector space.
func buildEmbedder(
	cfg config.EmbeddingConfig,
	cacheCfg config.CacheConfig,
	cache *dbRedis.Store,
	logger *zap.Logger,
) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if cache != nil {
		embedder = embcache.New(base, cache, embcache.Options{
			Prefix:     cacheCfg.KeyPrefix,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			TTL:        time.Duration(cacheCfg.TTLSec) * time.Second,
		}, metrics.EmbeddingCacheTotal, logger)
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Provider, cfg.Model, logger).
		WithBatchSize(cfg.BatchSize)

	// Instruction prefix is outermost so cache keys include it.
	if cfg.Instruction != "" {
		return domain.NewInstructionEmbedder(embedder, cfg.Instruction)
	}
	return embedder
}

func buildClassifier(
	ctx context.Context,
	cfg config.ClassifierConfig,
	logger *zap.Logger,
) (classifierProvider, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := geminiTransport.NewCompleter(ctx, &geminiTransport.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini classifier: %w", err)
		}
		return c, func() {
			if err := c.Close(); err != nil {
				logger.Warn("Close gemini client", zap.Error(err))
			}
		}, nil
	case config.ProviderOpenAI:
		return openaiTransport.NewCompleter(&openaiTransport.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			Provider: cfg.Provider,
			Logger:   logger,
		}), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown classifier provider %q: %w", cfg.Provider, domain.ErrConfiguration)
	}
}

// synonymsFromConfig validates configured synonym targets as category names.
func synonymsFromConfig(raw map[string]string) (map[string]product.Category, error) {
	out := make(map[string]product.Category, len(raw))
	for word, category := range raw {
		word = strings.TrimSpace(word)
		category = strings.TrimSpace(category)
		if word == "" || category == "" {
			return nil, fmt.Errorf("catalog.synonyms: empty entry %q -> %q: %w", word, category, domain.ErrConfiguration)
		}
		out[word] = product.Category(category)
	}
	return out, nil
}

// embeddingHealthChecker wraps domain.Embedder to implement health.ProviderChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}
