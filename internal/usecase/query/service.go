// Package query orchestrates a single question from intent routing to a formatted answer.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogqa/internal/domain"
	"github.com/kailas-cloud/catalogqa/internal/domain/faq"
	"github.com/kailas-cloud/catalogqa/internal/domain/filter"
	"github.com/kailas-cloud/catalogqa/internal/domain/product"
	"github.com/kailas-cloud/catalogqa/internal/logger"
	"github.com/kailas-cloud/catalogqa/internal/metrics"
)

// Deps is the read-only state shared by all queries. Built once at startup.
type Deps struct {
	Router    Classifier
	Extractor SpecExtractor
	Engine    ProductQuerier
	Embedder  Embedder
	Index     NearestFinder
	Corpus    *faq.Corpus

	// DisplayLimit caps the products rendered in an answer. 0 means DefaultDisplayLimit.
	DisplayLimit int
}

// Response is the outcome of one query.
type Response struct {
	ID     uuid.UUID
	Query  string
	Intent domain.Intent
	Stage  Stage
	Text   string

	// Product path.
	Spec     filter.Spec
	Products []product.Product // displayed slice, at most DisplayLimit
	Total    int               // matches before truncation

	// FAQ path.
	FAQIndex        int
	MatchedQuestion string
}

// Service answers catalog and FAQ questions.
type Service struct {
	deps Deps
}

// New creates a query service.
func New(d Deps) *Service {
	if d.DisplayLimit <= 0 {
		d.DisplayLimit = DefaultDisplayLimit
	}
	return &Service{deps: d}
}

// Answer classifies text and resolves it through the product or FAQ path.
func (s *Service) Answer(ctx context.Context, text string) (Response, error) {
	start := time.Now()

	resp, err := s.newResponse(ctx, text)
	if err != nil {
		return Response{}, err
	}

	intent, err := s.deps.Router.Classify(ctx, resp.Query)
	if err != nil {
		s.observe(ctx, resp, start, err)
		return Response{}, fmt.Errorf("answer: %w", err)
	}
	resp.Intent = intent
	s.advance(ctx, &resp, StageClassified, zap.Stringer("intent", intent))

	switch intent {
	case domain.IntentProduct:
		s.resolveProducts(ctx, &resp, s.deps.DisplayLimit)
	default:
		if err := s.resolveFAQ(ctx, &resp); err != nil {
			s.observe(ctx, resp, start, err)
			return Response{}, fmt.Errorf("answer: %w", err)
		}
	}

	s.advance(ctx, &resp, StageFormatted)
	s.observe(ctx, resp, start, nil)
	return resp, nil
}

// SearchProducts runs the product path without classification.
// limit overrides the display limit when positive.
func (s *Service) SearchProducts(ctx context.Context, text string, limit int) (Response, error) {
	start := time.Now()

	resp, err := s.newResponse(ctx, text)
	if err != nil {
		return Response{}, err
	}
	resp.Intent = domain.IntentProduct

	if limit <= 0 {
		limit = s.deps.DisplayLimit
	}
	s.resolveProducts(ctx, &resp, limit)
	s.advance(ctx, &resp, StageFormatted)
	s.observe(ctx, resp, start, nil)
	return resp, nil
}

// LookupFAQ runs the FAQ path without classification.
func (s *Service) LookupFAQ(ctx context.Context, text string) (Response, error) {
	start := time.Now()

	resp, err := s.newResponse(ctx, text)
	if err != nil {
		return Response{}, err
	}
	resp.Intent = domain.IntentFAQ

	if err := s.resolveFAQ(ctx, &resp); err != nil {
		s.observe(ctx, resp, start, err)
		return Response{}, fmt.Errorf("lookup faq: %w", err)
	}
	s.advance(ctx, &resp, StageFormatted)
	s.observe(ctx, resp, start, nil)
	return resp, nil
}

func (s *Service) newResponse(ctx context.Context, text string) (Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, fmt.Errorf("empty query: %w", domain.ErrInvalidQuery)
	}

	resp := Response{ID: uuid.New(), Query: text, FAQIndex: -1}
	s.advance(ctx, &resp, StageReceived)
	return resp, nil
}

func (s *Service) resolveProducts(ctx context.Context, resp *Response, limit int) {
	resp.Spec = s.deps.Extractor.Extract(resp.Query)
	matches := s.deps.Engine.Query(resp.Spec)

	resp.Total = len(matches)
	resp.Products = matches[:min(len(matches), limit)]
	resp.Text = FormatProducts(resp.Products)

	metrics.ProductMatches.Observe(float64(resp.Total))
	s.advance(ctx, resp, StageProductResolved,
		zap.Stringer("spec", resp.Spec),
		zap.Int("matches", resp.Total),
	)
}

func (s *Service) resolveFAQ(ctx context.Context, resp *Response) error {
	emb, err := s.deps.Embedder.Embed(ctx, resp.Query)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingProviderError) {
			err = fmt.Errorf("%v: %w", err, domain.ErrEmbeddingProviderError)
		}
		return fmt.Errorf("vectorize query: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(emb.TotalTokens)

	i, err := s.deps.Index.Nearest(emb.Embedding)
	if err != nil {
		return fmt.Errorf("nearest faq: %w", err)
	}
	entry, err := s.deps.Corpus.Entry(i)
	if err != nil {
		return fmt.Errorf("faq entry: %w", err)
	}

	resp.FAQIndex = i
	resp.MatchedQuestion = entry.Question
	resp.Text = entry.Answer

	s.advance(ctx, resp, StageFAQResolved,
		zap.Int("faq_index", i),
		zap.String("matched_question", entry.Question),
	)
	return nil
}

func (s *Service) advance(ctx context.Context, resp *Response, stage Stage, fields ...zap.Field) {
	resp.Stage = stage
	logger.FromContext(ctx).Debug("Query stage",
		append([]zap.Field{
			zap.String("query_id", resp.ID.String()),
			zap.String("stage", string(stage)),
		}, fields...)...,
	)
}

func (s *Service) observe(ctx context.Context, resp Response, start time.Time, err error) {
	label := resp.Intent.String()
	if resp.Stage == StageReceived {
		label = "unclassified"
	}

	outcome := metrics.OutcomeAnswered
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailed
	case resp.Intent == domain.IntentProduct && resp.Total == 0:
		outcome = metrics.OutcomeNoResults
	}

	metrics.QueriesTotal.WithLabelValues(label, outcome).Inc()
	metrics.QueryDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn("Query failed",
			zap.String("query_id", resp.ID.String()),
			zap.String("stage", string(resp.Stage)),
			zap.Error(err),
		)
		return
	}
	log.Info("Query answered",
		zap.String("query_id", resp.ID.String()),
		zap.String("intent", label),
		zap.String("outcome", outcome),
		zap.Duration("duration", time.Since(start)),
	)
}
